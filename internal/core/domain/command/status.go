package command

import (
	"aquabot/internal/core/domain"
	"aquabot/internal/core/port"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Safe operating ranges for the tank.
const (
	TempSafeMin  = 28.0
	TempSafeMax  = 34.0
	LevelSafeMin = 80.0
	LevelSafeMax = 100.0
)

type Status struct {
	sensors  port.SensorReader
	actuator port.Actuator
}

func NewStatus(sensors port.SensorReader, actuator port.Actuator) *Status {
	return &Status{sensors: sensors, actuator: actuator}
}

const controlTemplate = `*Control status:*
LED: %s
Pump: %s`

const sensorTemplate = `*Sensor status:*
Water temperature: %.1f°C%s
Water level: %.2f%%%s`

func (s *Status) Respond(ctx context.Context, bot port.Messenger, cmd domain.BotCommand) error {
	log.Info().Str("command", cmd.Command).Str("parameter", cmd.Parameter).Msg("handling request")

	var text string
	switch cmd.Parameter {
	case "control":
		text = fmt.Sprintf(controlTemplate,
			onOff(s.actuator.RelayState(domain.LED)),
			onOff(s.actuator.RelayState(domain.Pump)))
	case "sensor":
		temp := s.sensors.CurrentTemperature()
		level := s.sensors.CurrentLevel()
		text = fmt.Sprintf(sensorTemplate,
			temp, rangeWarning(temp, TempSafeMin, TempSafeMax),
			level, rangeWarning(level, LevelSafeMin, LevelSafeMax))
	default:
		text = "Use /status\\_control or /status\\_sensor"
	}

	if err := bot.SendMessage(ctx, text); err != nil {
		return fmt.Errorf("failed to send status: %w", err)
	}

	return nil
}

func rangeWarning(value, low, high float64) string {
	switch {
	case value < low:
		return " (too low!)"
	case value > high:
		return " (too high!)"
	default:
		return ""
	}
}
