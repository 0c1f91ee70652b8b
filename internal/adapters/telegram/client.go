package telegram

import (
	"aquabot/internal/adapters/metrics"
	"aquabot/internal/core/domain"
	"aquabot/internal/core/port"
	"aquabot/internal/core/service"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

const (
	methodGetMe       = "getMe"
	methodSendMessage = "sendMessage"
	methodGetUpdates  = "getUpdates"
)

var errEmptyMessage = errors.New("refusing to send an empty message")

type getUpdatesParams struct {
	Offset         int64    `json:"offset"`
	Limit          int      `json:"limit"`
	AllowedUpdates []string `json:"allowed_updates"`
}

// newestUpdate asks for the single most recent pending message update.
var newestUpdate = getUpdatesParams{Offset: -1, Limit: 1, AllowedUpdates: []string{"message"}}

// Client is the bot facade: identity lookup, outbound messages and polling of one
// inbound update at a time.
type Client struct {
	transport  port.Transport
	tracker    service.Tracker
	operatorID string
	maxRetries uint64
	backoff    time.Duration
	metrics    *metrics.Metrics
}

type ClientParams struct {
	Transport  port.Transport
	Tracker    service.Tracker
	OperatorID string
	MaxRetries uint64
	Backoff    time.Duration
	Metrics    *metrics.Metrics
}

func NewClient(p ClientParams) *Client {
	tracker := p.Tracker
	if tracker == nil {
		tracker = service.NewUpdateTracker()
	}

	return &Client{
		transport:  p.Transport,
		tracker:    tracker,
		operatorID: p.OperatorID,
		maxRetries: p.MaxRetries,
		backoff:    p.Backoff,
		metrics:    p.Metrics,
	}
}

func (c *Client) GetBotInfo(ctx context.Context) (domain.BotInfo, error) {
	body, err := c.transport.Get(ctx, methodGetMe)
	if err != nil {
		return domain.BotInfo{}, fmt.Errorf("failed to fetch bot info: %w", err)
	}

	info, err := DecodeBotInfo(body)
	if err != nil {
		return domain.BotInfo{}, fmt.Errorf("failed to decode bot info: %w", err)
	}

	return info, nil
}

// SendMessage posts text to the operator chat, retrying transport failures with a
// fixed backoff. It fails immediately when no operator chat is configured.
func (c *Client) SendMessage(ctx context.Context, text string) error {
	if c.operatorID == "" {
		log.Debug().Msg("no operator chat configured, not sending")
		return domain.ErrNoOperator
	}

	if text == "" {
		return errEmptyMessage
	}

	payload, err := json.Marshal(&bot.SendMessageParams{
		ChatID:    c.operatorID,
		Text:      domain.Truncate(text, domain.MaxOutboundLength),
		ParseMode: models.ParseModeMarkdownV1,
	})
	if err != nil {
		return fmt.Errorf("failed to build message payload: %w", err)
	}

	send := func() error {
		body, err := c.transport.Post(ctx, methodSendMessage, payload)
		var statusErr *StatusError
		if errors.As(err, &statusErr) && !statusErr.Retryable() {
			return backoff.Permanent(err)
		}
		if err != nil {
			return err
		}

		if len(body) == 0 {
			return fmt.Errorf("%w: empty response", domain.ErrTransport)
		}

		if err := DecodeSent(body); err != nil {
			return backoff.Permanent(err)
		}

		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(c.backoff), c.maxRetries), ctx)

	err = backoff.RetryNotify(send, policy, func(err error, next time.Duration) {
		log.Warn().Err(err).Dur("retryIn", next).Msg("failed to send message, retrying")
	})
	c.metrics.RecordSend(err)
	if err != nil {
		log.Err(err).Msg("failed to send message")
		return fmt.Errorf("failed to send message: %w", err)
	}

	log.Debug().Msg("message sent")

	return nil
}

// Poll fetches the newest pending update. It returns a nil message and a nil error
// when there is nothing new, and an error wrapping domain.ErrTransport or
// domain.ErrDecode when the request or the response was bad. The update tracker
// only moves on a fresh update.
func (c *Client) Poll(ctx context.Context) (*domain.InboundMessage, error) {
	payload, err := json.Marshal(newestUpdate)
	if err != nil {
		return nil, fmt.Errorf("failed to build update request: %w", err)
	}

	body, err := c.transport.Post(ctx, methodGetUpdates, payload)
	if err != nil {
		return nil, err
	}

	if len(body) == 0 {
		return nil, fmt.Errorf("%w: empty response", domain.ErrTransport)
	}

	updates, err := DecodeUpdates(body)
	if err != nil {
		return nil, err
	}

	if len(updates) == 0 {
		return nil, nil
	}

	update := updates[0]
	if update.ID < 0 {
		return nil, fmt.Errorf("%w: negative update id %d", domain.ErrDecode, update.ID)
	}

	if !c.tracker.ShouldProcess(uint64(update.ID)) {
		return nil, nil
	}

	c.metrics.SetLastUpdateID(uint64(update.ID))

	if update.Message == nil {
		log.Debug().Int64("updateId", update.ID).Msg("update carries no message")
		return nil, nil
	}

	msg := domain.NewInboundMessage(
		senderName(update.Message.From),
		strconv.FormatInt(update.Message.Chat.ID, 10),
		update.Message.Text,
	)

	return &msg, nil
}

func (c *Client) LastUpdateID() uint64 {
	return c.tracker.LastSeen()
}

func senderName(user *models.User) string {
	if user == nil {
		return ""
	}

	if user.Username == "" {
		return user.FirstName
	}

	return "@" + user.Username
}
