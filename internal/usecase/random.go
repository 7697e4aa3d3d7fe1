package usecase

import (
	"time"

	"github.com/eliteGoblin/adloop/internal/domain"
)

// intBetween returns a random int in [lo, hi].
func intBetween(r domain.Randomizer, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

// durationBetween returns a random duration in [rng.Min, rng.Max].
func durationBetween(r domain.Randomizer, rng DurationRange) time.Duration {
	if rng.Max <= rng.Min {
		return rng.Min
	}
	return rng.Min + time.Duration(r.Float64()*float64(rng.Max-rng.Min))
}

// jitter offsets p by an independent random amount in [-px, px] on each axis.
func jitter(r domain.Randomizer, p domain.Point, px int) domain.Point {
	if px <= 0 {
		return p
	}
	return domain.Point{
		X: p.X + intBetween(r, -px, px),
		Y: p.Y + intBetween(r, -px, px),
	}
}

// Pick returns a random duration in the range.
func (r DurationRange) Pick(rng domain.Randomizer) time.Duration {
	return durationBetween(rng, r)
}
