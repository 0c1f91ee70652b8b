package device

import (
	"aquabot/internal/adapters/metrics"
	"aquabot/internal/core/port"
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
)

// Sampler reads every probe once per call and publishes the values into a SensorCell.
// A probe that fails keeps its previous value.
type Sampler struct {
	temperature port.Probe
	level       port.Probe
	cell        *SensorCell
	metrics     *metrics.Metrics
	now         func() time.Time
}

func NewSampler(temperature, level port.Probe, cell *SensorCell, m *metrics.Metrics) *Sampler {
	return &Sampler{
		temperature: temperature,
		level:       level,
		cell:        cell,
		metrics:     m,
		now:         time.Now,
	}
}

func (s *Sampler) Sample(ctx context.Context) error {
	var errs []error

	if s.temperature != nil {
		if v, err := s.temperature.Read(ctx); err != nil {
			errs = append(errs, err)
		} else {
			s.cell.StoreTemperature(v, s.now())
		}
	}

	if s.level != nil {
		if v, err := s.level.Read(ctx); err != nil {
			errs = append(errs, err)
		} else {
			s.cell.StoreLevel(v, s.now())
		}
	}

	reading := s.cell.Snapshot()
	s.metrics.RecordReading(reading)

	err := errors.Join(errs...)
	if err != nil {
		log.Warn().Err(err).Msg("failed to sample sensors")
		return err
	}

	log.Debug().
		Float64("temperature", reading.Temperature).
		Float64("level", reading.Level).
		Msg("sampled sensors")

	return nil
}
