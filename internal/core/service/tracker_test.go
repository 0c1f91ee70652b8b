package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldProcess(t *testing.T) {
	tests := []struct {
		name      string
		lastSeen  uint64
		candidate uint64
		want      bool
		wantLast  uint64
	}{
		{
			name:      "first real update is accepted",
			lastSeen:  0,
			candidate: 1,
			want:      true,
			wantLast:  1,
		},
		{
			name:      "zero is never newer than the initial state",
			lastSeen:  0,
			candidate: 0,
			want:      false,
			wantLast:  0,
		},
		{
			name:      "newer update advances",
			lastSeen:  10,
			candidate: 42,
			want:      true,
			wantLast:  42,
		},
		{
			name:      "same update is rejected",
			lastSeen:  42,
			candidate: 42,
			want:      false,
			wantLast:  42,
		},
		{
			name:      "older update is rejected",
			lastSeen:  42,
			candidate: 41,
			want:      false,
			wantLast:  42,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := &UpdateTracker{lastSeen: tt.lastSeen}

			assert.Equal(t, tt.want, tracker.ShouldProcess(tt.candidate))
			assert.Equal(t, tt.wantLast, tracker.LastSeen())
		})
	}
}

func TestShouldProcess_Ordering(t *testing.T) {
	pairs := [][2]uint64{{1, 2}, {5, 5}, {7, 100}, {3, 3}}

	for _, p := range pairs {
		a, b := p[0], p[1]
		tracker := NewUpdateTracker()

		assert.True(t, tracker.ShouldProcess(a))
		assert.Equal(t, b > a, tracker.ShouldProcess(b))
		assert.Equal(t, b, tracker.LastSeen())
	}
}

func TestShouldProcess_Concurrent(t *testing.T) {
	tracker := NewUpdateTracker()

	var wg sync.WaitGroup
	accepted := make(chan uint64, 100)
	for i := uint64(1); i <= 100; i++ {
		wg.Add(1)
		go func(id uint64) {
			defer wg.Done()
			if tracker.ShouldProcess(id) {
				accepted <- id
			}
		}(i)
	}
	wg.Wait()
	close(accepted)

	assert.Equal(t, uint64(100), tracker.LastSeen())
	assert.NotEmpty(t, accepted)
}
