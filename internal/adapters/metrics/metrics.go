// Package metrics defines the Prometheus metrics of the bot and serves them over HTTP.
//
// Metric naming follows Prometheus conventions:
//   - aquabot_ prefix for all metrics
//   - _total suffix for counters
//   - _seconds suffix for duration histograms
//
// All Record/Observe methods are safe to call on a nil *Metrics, which turns
// them into no-ops.
package metrics

import (
	"aquabot/internal/core/domain"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Poll cycle outcomes.
const (
	PollFresh       = "fresh"
	PollStale       = "stale"
	PollFailed      = "transport_error"
	PollDecodeError = "decode_error"
	PollOffline     = "offline"
)

type Metrics struct {
	registry *prometheus.Registry

	pollsTotal          *prometheus.CounterVec
	pollDurationSeconds prometheus.Histogram
	dispatchesTotal     *prometheus.CounterVec
	messagesSentTotal   *prometheus.CounterVec
	lastUpdateID        prometheus.Gauge
	waterTemperature    prometheus.Gauge
	waterLevel          prometheus.Gauge
	relayState          *prometheus.GaugeVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		pollsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aquabot_polls_total",
				Help: "Total number of update poll cycles by outcome.",
			},
			[]string{"outcome"},
		),
		pollDurationSeconds: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "aquabot_poll_duration_seconds",
				Help:    "Duration of update poll cycles in seconds.",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
		),
		dispatchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aquabot_dispatches_total",
				Help: "Total number of parsed commands by dispatch result.",
			},
			[]string{"result"},
		),
		messagesSentTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aquabot_messages_sent_total",
				Help: "Total number of outbound messages by result.",
			},
			[]string{"result"},
		),
		lastUpdateID: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "aquabot_last_update_id",
				Help: "Newest update id accepted in this session.",
			},
		),
		waterTemperature: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "aquabot_water_temperature_celsius",
				Help: "Latest sampled water temperature.",
			},
		),
		waterLevel: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "aquabot_water_level_percent",
				Help: "Latest sampled water level.",
			},
		),
		relayState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "aquabot_relay_on",
				Help: "Relay state, 1 when switched on.",
			},
			[]string{"relay"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.pollsTotal,
		m.pollDurationSeconds,
		m.dispatchesTotal,
		m.messagesSentTotal,
		m.lastUpdateID,
		m.waterTemperature,
		m.waterLevel,
		m.relayState,
	)

	return m
}

// RecordPoll records the outcome and duration of one poll cycle.
func (m *Metrics) RecordPoll(outcome string, duration time.Duration) {
	if m == nil {
		return
	}

	m.pollsTotal.WithLabelValues(outcome).Inc()
	m.pollDurationSeconds.Observe(duration.Seconds())
}

func (m *Metrics) RecordDispatch(matched bool) {
	if m == nil {
		return
	}

	result := "hit"
	if !matched {
		result = "miss"
	}

	m.dispatchesTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) RecordSend(err error) {
	if m == nil {
		return
	}

	result := "ok"
	if err != nil {
		result = "failed"
	}

	m.messagesSentTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) SetLastUpdateID(id uint64) {
	if m == nil {
		return
	}

	m.lastUpdateID.Set(float64(id))
}

func (m *Metrics) RecordReading(r domain.Reading) {
	if m == nil {
		return
	}

	m.waterTemperature.Set(r.Temperature)
	m.waterLevel.Set(r.Level)
}

func (m *Metrics) RecordRelay(id domain.RelayID, on bool) {
	if m == nil {
		return
	}

	var v float64
	if on {
		v = 1
	}

	m.relayState.WithLabelValues(string(id)).Set(v)
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("failed to shut down metrics server")
		}
	}()

	log.Info().Str("addr", addr).Msg("serving metrics")

	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}

	return err
}
