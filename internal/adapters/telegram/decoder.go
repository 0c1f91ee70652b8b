package telegram

import (
	"aquabot/internal/core/domain"
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-telegram/bot/models"
)

type envelope struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	ErrorCode   int             `json:"error_code"`
	Description string          `json:"description"`
}

// decodeResult unwraps the {"ok":..,"result":..} envelope. Anything that is not a
// successful envelope with a result, including the "{}" failure body, is ErrDecode.
func decodeResult(body []byte) (json.RawMessage, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("%w: empty body", domain.ErrDecode)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDecode, err)
	}

	switch {
	case !env.OK && env.Description != "":
		return nil, fmt.Errorf("%w: api error %d: %s", domain.ErrDecode, env.ErrorCode, env.Description)
	case !env.OK:
		return nil, fmt.Errorf("%w: response not ok", domain.ErrDecode)
	case len(env.Result) == 0 || bytes.Equal(env.Result, []byte("null")):
		return nil, fmt.Errorf("%w: missing result", domain.ErrDecode)
	}

	return env.Result, nil
}

// DecodeUpdates returns the updates of a getUpdates response. A valid response
// without pending updates yields an empty slice and no error.
func DecodeUpdates(body []byte) ([]models.Update, error) {
	result, err := decodeResult(body)
	if err != nil {
		return nil, err
	}

	updates := []models.Update{}
	if err := json.Unmarshal(result, &updates); err != nil {
		return nil, fmt.Errorf("%w: result is not an update list: %w", domain.ErrDecode, err)
	}

	return updates, nil
}

func DecodeBotInfo(body []byte) (domain.BotInfo, error) {
	result, err := decodeResult(body)
	if err != nil {
		return domain.BotInfo{}, err
	}

	var me models.User
	if err := json.Unmarshal(result, &me); err != nil {
		return domain.BotInfo{}, fmt.Errorf("%w: result is not a user: %w", domain.ErrDecode, err)
	}

	name := me.Username
	if name == "" {
		name = me.FirstName
	}

	if name == "" {
		return domain.BotInfo{}, fmt.Errorf("%w: bot has no name", domain.ErrDecode)
	}

	return domain.BotInfo{DisplayName: domain.Truncate(name, domain.MaxBotNameLength)}, nil
}

// DecodeSent checks that a sendMessage response reports success.
func DecodeSent(body []byte) error {
	_, err := decodeResult(body)
	return err
}
