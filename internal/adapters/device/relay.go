package device

import (
	"aquabot/internal/adapters/metrics"
	"aquabot/internal/core/domain"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.uber.org/atomic"
)

// RelayBank keeps the desired state of every relay. All relays start switched off.
type RelayBank struct {
	relays  map[domain.RelayID]*atomic.Bool
	metrics *metrics.Metrics
}

func NewRelayBank(m *metrics.Metrics, ids ...domain.RelayID) *RelayBank {
	b := &RelayBank{
		relays:  make(map[domain.RelayID]*atomic.Bool, len(ids)),
		metrics: m,
	}

	for _, id := range ids {
		b.relays[id] = atomic.NewBool(false)
		m.RecordRelay(id, false)
	}

	return b
}

func (b *RelayBank) SetRelay(id domain.RelayID, on bool) error {
	state, ok := b.relays[id]
	if !ok {
		return fmt.Errorf("unknown relay %q", id)
	}

	if previous := state.Swap(on); previous != on {
		log.Info().Str("relay", string(id)).Bool("on", on).Msg("relay switched")
	}

	b.metrics.RecordRelay(id, on)

	return nil
}

// RelayState reports false for unknown relays.
func (b *RelayBank) RelayState(id domain.RelayID) bool {
	state, ok := b.relays[id]
	if !ok {
		return false
	}

	return state.Load()
}
