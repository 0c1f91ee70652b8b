package handler

import (
	"aquabot/internal/adapters/metrics"
	"aquabot/internal/core/domain"
	"aquabot/internal/core/domain/command"
	"aquabot/internal/core/port"
	"aquabot/internal/core/service"
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const unknownCommand = "Unknown command, send /help to see what I can do."

// Command drives one poll cycle: fetch the newest update, check who sent it, parse it
// and hand it to the registered command handler.
type Command struct {
	bot        port.Bot
	registry   port.CommandRegistry
	authorizer service.Authorizer
	network    port.Network
	metrics    *metrics.Metrics
}

type CommandParams struct {
	Bot        port.Bot
	Registry   port.CommandRegistry
	Authorizer service.Authorizer
	Network    port.Network
	Metrics    *metrics.Metrics
}

func NewCommand(p CommandParams) *Command {
	return &Command{
		bot:        p.Bot,
		registry:   p.Registry,
		authorizer: p.Authorizer,
		network:    p.Network,
		metrics:    p.Metrics,
	}
}

// Handle runs a single cycle. It returns the poll error, if any, so the scheduler can
// log it; nothing is dispatched in that case.
func (c *Command) Handle(ctx context.Context) error {
	l := cycleLogger()

	if c.network != nil && !c.network.IsConnected(ctx) {
		c.metrics.RecordPoll(metrics.PollOffline, 0)
		l.Debug().Msg("skipping poll, network is down")
		return nil
	}

	start := time.Now()
	msg, err := c.bot.Poll(ctx)
	elapsed := time.Since(start)

	switch {
	case errors.Is(err, domain.ErrDecode):
		c.metrics.RecordPoll(metrics.PollDecodeError, elapsed)
		l.Warn().Err(err).Msg("could not decode update")
		return err
	case err != nil:
		c.metrics.RecordPoll(metrics.PollFailed, elapsed)
		l.Warn().Err(err).Msg("failed to poll for updates")
		return err
	case msg == nil:
		c.metrics.RecordPoll(metrics.PollStale, elapsed)
		return nil
	}

	c.metrics.RecordPoll(metrics.PollFresh, elapsed)

	l = l.With().Str("sender", msg.Sender).Str("chatId", msg.ChatID).Logger()
	l.Debug().Str("message", msg.Text).Msg("received message")

	if c.authorizer != nil && !c.authorizer.IsAuthorized(ctx, *msg) {
		return nil
	}

	cmd, ok := command.Parse(msg.Text)
	if !ok {
		l.Debug().Msg("message is not a command")
		return nil
	}

	matched := c.registry.Dispatch(ctx, c.bot, cmd)
	c.metrics.RecordDispatch(matched)

	if !matched {
		l.Debug().Str("command", cmd.Command).Msg("no handler for command")

		if err := c.bot.SendMessage(ctx, unknownCommand); err != nil {
			l.Err(err).Msg("failed to send unknown command reply")
		}

		return nil
	}

	l.Info().Str("command", cmd.Command).Str("parameter", cmd.Parameter).Msg("dispatched command")

	return nil
}

// DiscardPending polls once and drops the result, so that a command sent while the
// bot was offline is not replayed on startup.
func (c *Command) DiscardPending(ctx context.Context) {
	msg, err := c.bot.Poll(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("failed to discard pending update")
		return
	}

	if msg != nil {
		log.Info().Str("sender", msg.Sender).Str("message", msg.Text).Msg("discarded pending update")
	}
}

func cycleLogger() zerolog.Logger {
	id, err := uuid.NewV4()
	if err != nil {
		return log.Logger
	}

	return log.With().Str("cycle", id.String()).Logger()
}
