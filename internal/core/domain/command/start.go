package command

import (
	"aquabot/internal/core/domain"
	"aquabot/internal/core/port"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

const startMessage = `Hi, I'm Aqua, a bot that reports on and controls your smart aquarium.
Send /help for the full list of commands.`

const helpMessage = `*Basic*
  /start => welcome message
  /help => this command list
*Control*
  /led\_toggle, /led\_on, /led\_off => switch the LED light
  /pompa\_toggle, /pompa\_on, /pompa\_off => switch the water pump
*Monitor*
  /air\_suhu => current water temperature
  /air\_tinggi => current water level
*Status*
  /status\_control => current relay states
  /status\_sensor => current sensor readings
  /debug => runtime and polling internals`

// Text replies with a fixed message regardless of the parameter.
type Text struct {
	name string
	text string
}

func NewStart() *Text {
	return &Text{name: "start", text: startMessage}
}

func NewHelp() *Text {
	return &Text{name: "help", text: helpMessage}
}

func (t *Text) Respond(ctx context.Context, bot port.Messenger, cmd domain.BotCommand) error {
	log.Info().Str("command", cmd.Command).Str("handler", t.name).Msg("handling request")

	if err := bot.SendMessage(ctx, t.text); err != nil {
		return fmt.Errorf("failed to send %s message: %w", t.name, err)
	}

	return nil
}
