package infra

import (
	"context"
	"math/rand"
	"time"

	"github.com/eliteGoblin/adloop/internal/domain"
)

// NewRandom returns a randomness source. A zero seed uses the current time.
func NewRandom(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// ClockSleeper implements domain.Sleeper with a real timer.
type ClockSleeper struct{}

// NewClockSleeper creates a sleeper that really waits.
func NewClockSleeper() *ClockSleeper {
	return &ClockSleeper{}
}

// Sleep waits for d or until ctx is done.
func (ClockSleeper) Sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// Ensure implementations satisfy interfaces
var _ domain.Randomizer = (*rand.Rand)(nil)
var _ domain.Sleeper = ClockSleeper{}
