package service

import (
	"aquabot/internal/core/domain"
	"aquabot/internal/core/port"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

type Authorizer interface {
	IsAuthorized(ctx context.Context, msg domain.InboundMessage) bool
}

// OperatorAuthorizer only lets the configured operator chat issue commands.
type OperatorAuthorizer struct {
	operatorID string
	sender     port.Messenger
}

func NewAuthorizer(operatorID string, sender port.Messenger) *OperatorAuthorizer {
	return &OperatorAuthorizer{operatorID: operatorID, sender: sender}
}

const forbidden = "Ignored a command from %s (chat %s): only this chat may control the aquarium."

func (a *OperatorAuthorizer) IsAuthorized(ctx context.Context, msg domain.InboundMessage) bool {
	if a.operatorID != "" && msg.ChatID == a.operatorID {
		return true
	}

	log.Warn().Err(domain.ErrUnauthorized).Str("sender", msg.Sender).Str("chatId", msg.ChatID).Msg("rejected message from unauthorized chat")

	if a.operatorID == "" {
		return false
	}

	err := a.sender.SendMessage(ctx, fmt.Sprintf(forbidden, domain.EscapeMarkdown(msg.Sender), msg.ChatID))
	if err != nil {
		log.Err(err).Msg("failed to send unauthorized warning")
	}

	return false
}
