package port

import (
	"aquabot/internal/core/domain"
	"context"
)

type Command interface {
	// Respond handles a parsed command, replying through the given messenger.
	Respond(ctx context.Context, bot Messenger, cmd domain.BotCommand) error
}

// CommandFunc adapts a plain function to the Command interface.
type CommandFunc func(ctx context.Context, bot Messenger, cmd domain.BotCommand) error

func (f CommandFunc) Respond(ctx context.Context, bot Messenger, cmd domain.BotCommand) error {
	return f(ctx, bot, cmd)
}

type CommandRegistry interface {
	// Register binds a handler to a command token, replacing any previous binding.
	Register(command string, handler Command)
	// Get retrieves the handler bound to a command token or returns an error if none is bound.
	Get(command string) (Command, error)
	// Dispatch invokes the handler bound to cmd.Command and reports whether one was found.
	Dispatch(ctx context.Context, bot Messenger, cmd domain.BotCommand) bool
	// ListCommands returns every registered command token.
	ListCommands() []string
}
