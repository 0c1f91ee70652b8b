package command

import (
	"aquabot/internal/core/domain"
	"aquabot/internal/core/port"
	"context"
	"fmt"
	"runtime"
	"runtime/debug"
	"runtime/metrics"
	"time"

	"github.com/rs/zerolog/log"
)

type updateSource interface {
	LastUpdateID() uint64
}

type readingSource interface {
	Snapshot() domain.Reading
}

// Debug reports runtime and polling internals to the operator.
type Debug struct {
	updates  updateSource
	readings readingSource
	now      func() time.Time
}

func NewDebug(updates updateSource, readings readingSource) *Debug {
	return &Debug{updates: updates, readings: readings, now: time.Now}
}

const kb = 1024
const debugTemplate = `allocated mem: %d KB
threads running: %d
heap: %d KB
stack: %d KB
last update id: %d
last sample: %s
compiled with %s for %s-%s
`
const metricCount = 3

func (d *Debug) Respond(ctx context.Context, bot port.Messenger, cmd domain.BotCommand) error {
	l := log.With().Str("command", cmd.Command).Logger()
	l.Info().Msg("handling request")

	data := make([]metrics.Sample, metricCount)
	data[0] = metrics.Sample{Name: "/memory/classes/heap/objects:bytes"}
	data[1] = metrics.Sample{Name: "/memory/classes/heap/stacks:bytes"}
	data[2] = metrics.Sample{Name: "/memory/classes/total:bytes"}

	metrics.Read(data)

	var goos, goarch string
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			switch setting.Key {
			case "GOOS":
				goos = setting.Value
			case "GOARCH":
				goarch = setting.Value
			}
		}
	}

	err := bot.SendMessage(ctx, fmt.Sprintf(
		debugTemplate,
		data[2].Value.Uint64()/kb,
		runtime.NumGoroutine(),
		data[0].Value.Uint64()/kb,
		data[1].Value.Uint64()/kb,
		d.updates.LastUpdateID(),
		d.sampleAge(),
		runtime.Version(), goos, goarch,
	))
	if err != nil {
		return fmt.Errorf("failed to send debug info: %w", err)
	}

	return nil
}

func (d *Debug) sampleAge() string {
	at := d.readings.Snapshot().SampledAt
	if at.IsZero() {
		return "never"
	}

	return d.now().Sub(at).Truncate(time.Second).String() + " ago"
}
