package command

import (
	"aquabot/internal/core/domain"
	"aquabot/internal/core/port"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

type Relay struct {
	actuator port.Actuator
	relay    domain.RelayID
	label    string
}

func NewRelay(actuator port.Actuator, relay domain.RelayID, label string) *Relay {
	return &Relay{actuator: actuator, relay: relay, label: label}
}

const relayUsage = "Use /%[1]s\\_toggle, /%[1]s\\_on or /%[1]s\\_off"

func (r *Relay) Respond(ctx context.Context, bot port.Messenger, cmd domain.BotCommand) error {
	l := log.With().
		Str("command", cmd.Command).
		Str("parameter", cmd.Parameter).
		Str("relay", string(r.relay)).
		Logger()

	l.Info().Msg("handling request")

	var on bool
	switch cmd.Parameter {
	case "toggle":
		on = !r.actuator.RelayState(r.relay)
	case "on":
		on = true
	case "off":
		on = false
	default:
		return bot.SendMessage(ctx, fmt.Sprintf(relayUsage, cmd.Command))
	}

	if err := r.actuator.SetRelay(r.relay, on); err != nil {
		l.Err(err).Msg("failed to switch relay")
		if sendErr := bot.SendMessage(ctx, fmt.Sprintf("Could not switch the %s.", r.label)); sendErr != nil {
			l.Err(sendErr).Msg("failed to send relay failure notice")
		}
		return fmt.Errorf("failed to switch %s: %w", r.relay, err)
	}

	if err := bot.SendMessage(ctx, fmt.Sprintf("The %s is now *%s*.", r.label, onOff(on))); err != nil {
		return fmt.Errorf("failed to send relay confirmation: %w", err)
	}

	return nil
}

func onOff(on bool) string {
	if on {
		return "ON"
	}

	return "OFF"
}
