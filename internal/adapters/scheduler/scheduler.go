package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const slowJobThreshold = 5 * time.Second

// Scheduler runs the periodic jobs of the bot. A job never overlaps with itself; a run
// that is due while the previous one is still busy is skipped.
type Scheduler struct {
	scheduler gocron.Scheduler
}

func New() (*Scheduler, error) {
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
		gocron.WithLogger(logAdapter{}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{scheduler: s}, nil
}

// Every registers job to run each interval, starting immediately once Start is called.
func (s *Scheduler) Every(ctx context.Context, name string, interval time.Duration, job func(context.Context) error) error {
	if name == "" {
		return errors.New("empty job name")
	}

	if interval <= 0 {
		return fmt.Errorf("invalid interval %s for job %s", interval, name)
	}

	if job == nil {
		return errors.New("nil job function")
	}

	l := log.With().Str("job", name).Logger()

	task := func() {
		start := time.Now()

		if err := job(ctx); err != nil {
			l.Debug().Err(err).Msg("job returned an error")
		}

		if elapsed := time.Since(start); elapsed > slowJobThreshold {
			l.Warn().Dur("duration", elapsed).Msg("slow scheduled job")
		}
	}

	_, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule job %s: %w", name, err)
	}

	l.Info().Dur("interval", interval).Msg("job scheduled")

	return nil
}

func (s *Scheduler) Start() {
	s.scheduler.Start()
	log.Debug().Int("jobs", len(s.scheduler.Jobs())).Msg("scheduler started")
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() error {
	if err := s.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("failed to shut down scheduler: %w", err)
	}

	return nil
}

type logAdapter struct{}

func (logAdapter) Debug(msg string, args ...any) { event(log.Debug(), args).Msg(msg) }
func (logAdapter) Info(msg string, args ...any)  { event(log.Info(), args).Msg(msg) }
func (logAdapter) Warn(msg string, args ...any)  { event(log.Warn(), args).Msg(msg) }
func (logAdapter) Error(msg string, args ...any) { event(log.Error(), args).Msg(msg) }

func event(e *zerolog.Event, args []any) *zerolog.Event {
	for i := 0; i < len(args); i += 2 {
		if i+1 >= len(args) {
			return e.Interface("value", args[i])
		}

		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}

		if err, ok := args[i+1].(error); ok {
			e = e.AnErr(key, err)
			continue
		}

		e = e.Interface(key, args[i+1])
	}

	return e
}
