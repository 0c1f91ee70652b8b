package port

import (
	"aquabot/internal/core/domain"
	"context"
)

type Messenger interface {
	// SendMessage delivers text to the configured operator chat.
	SendMessage(ctx context.Context, text string) error
}

type Bot interface {
	Messenger
	// Poll fetches at most one new inbound update. A nil message with a nil error means nothing new.
	Poll(ctx context.Context) (*domain.InboundMessage, error)
	// GetBotInfo fetches the bot identity.
	GetBotInfo(ctx context.Context) (domain.BotInfo, error)
}

type Transport interface {
	// Get issues a body-less request for an API method and returns the raw response body.
	Get(ctx context.Context, method string) ([]byte, error)
	// Post issues a JSON request for an API method and returns the raw response body.
	Post(ctx context.Context, method string, body []byte) ([]byte, error)
}
