package port

import (
	"aquabot/internal/core/domain"
	"context"
)

type SensorReader interface {
	CurrentTemperature() float64
	CurrentLevel() float64
}

type Actuator interface {
	SetRelay(id domain.RelayID, on bool) error
	RelayState(id domain.RelayID) bool
}

type Network interface {
	IsConnected(ctx context.Context) bool
}

// Probe reads one raw value from a physical sensor.
type Probe interface {
	Read(ctx context.Context) (float64, error)
}
