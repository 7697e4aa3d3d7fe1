package fixtures

import (
	"context"
	"sync"
	"time"
)

// InstantSleeper records requested waits and returns immediately.
type InstantSleeper struct {
	mu    sync.Mutex
	slept []time.Duration
}

// Sleep records d.
func (s *InstantSleeper) Sleep(ctx context.Context, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slept = append(s.slept, d)
}

// Total returns the sum of all recorded waits.
func (s *InstantSleeper) Total() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	var sum time.Duration
	for _, d := range s.slept {
		sum += d
	}
	return sum
}
