package command

import (
	"aquabot/internal/core/domain"
	"aquabot/internal/core/port"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

type Water struct {
	sensors port.SensorReader
}

func NewWater(sensors port.SensorReader) *Water {
	return &Water{sensors: sensors}
}

func (w *Water) Respond(ctx context.Context, bot port.Messenger, cmd domain.BotCommand) error {
	log.Info().Str("command", cmd.Command).Str("parameter", cmd.Parameter).Msg("handling request")

	var text string
	switch cmd.Parameter {
	case "suhu":
		text = fmt.Sprintf("Water temperature: *%.1f°C*", w.sensors.CurrentTemperature())
	case "tinggi":
		text = fmt.Sprintf("Water level: *%.2f%%*", w.sensors.CurrentLevel())
	default:
		text = "Use /air\\_suhu or /air\\_tinggi"
	}

	if err := bot.SendMessage(ctx, text); err != nil {
		return fmt.Errorf("failed to send water reading: %w", err)
	}

	return nil
}
