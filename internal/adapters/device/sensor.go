package device

import (
	"aquabot/internal/core/domain"
	"time"

	"go.uber.org/atomic"
)

// SensorCell holds the latest readings. The sampling job writes it and command
// handlers read it concurrently.
type SensorCell struct {
	temperature atomic.Float64
	level       atomic.Float64
	sampledAt   atomic.Time
}

func NewSensorCell() *SensorCell {
	return &SensorCell{}
}

func (c *SensorCell) CurrentTemperature() float64 {
	return c.temperature.Load()
}

func (c *SensorCell) CurrentLevel() float64 {
	return c.level.Load()
}

func (c *SensorCell) StoreTemperature(v float64, at time.Time) {
	c.temperature.Store(v)
	c.sampledAt.Store(at)
}

func (c *SensorCell) StoreLevel(v float64, at time.Time) {
	c.level.Store(v)
	c.sampledAt.Store(at)
}

func (c *SensorCell) Snapshot() domain.Reading {
	return domain.Reading{
		Temperature: c.temperature.Load(),
		Level:       c.level.Load(),
		SampledAt:   c.sampledAt.Load(),
	}
}
