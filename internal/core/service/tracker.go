package service

import (
	"sync"

	"github.com/rs/zerolog/log"
)

type Tracker interface {
	ShouldProcess(candidateID uint64) bool
	LastSeen() uint64
}

// UpdateTracker remembers the newest update id seen in this session. Ids are compared
// with plain unsigned greater-than, there is no wraparound handling.
type UpdateTracker struct {
	lastSeen uint64
	mutex    sync.Mutex
}

func NewUpdateTracker() *UpdateTracker {
	return &UpdateTracker{}
}

// ShouldProcess accepts and records candidateID only when it is newer than the last seen id.
func (t *UpdateTracker) ShouldProcess(candidateID uint64) bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if candidateID <= t.lastSeen {
		log.Debug().Uint64("updateId", candidateID).Uint64("lastSeen", t.lastSeen).Msg("stale update")
		return false
	}

	t.lastSeen = candidateID

	return true
}

func (t *UpdateTracker) LastSeen() uint64 {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	return t.lastSeen
}
