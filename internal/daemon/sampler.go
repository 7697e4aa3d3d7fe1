package daemon

import (
	"context"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/eliteGoblin/adloop/internal/domain"
)

// DefaultSampleInterval is the pause after each diagnostic sample.
const DefaultSampleInterval = 1 * time.Second

// Sampler prints foreground samples so an operator can see what the
// inspector reports without running any cycles.
type Sampler struct {
	inspector domain.ForegroundInspector
	sleeper   domain.Sleeper
	out       io.Writer
	interval  time.Duration
}

// NewSampler creates a sampler writing to out.
func NewSampler(inspector domain.ForegroundInspector, sleeper domain.Sleeper, out io.Writer) *Sampler {
	return &Sampler{
		inspector: inspector,
		sleeper:   sleeper,
		out:       out,
		interval:  DefaultSampleInterval,
	}
}

// Sample prints n lines of the form "[i] foreground=<id>" and returns how
// many were taken before ctx was cancelled.
func (s *Sampler) Sample(ctx context.Context, n int) int {
	index := color.New(color.FgCyan)
	value := color.New(color.Bold)

	taken := 0
	for i := 1; i <= n; i++ {
		if ctx.Err() != nil {
			break
		}
		id := s.inspector.Current(ctx)
		index.Fprintf(s.out, "[%d]", i)
		_, _ = io.WriteString(s.out, " foreground=")
		value.Fprintln(s.out, id)
		taken++
		s.sleeper.Sleep(ctx, s.interval)
	}
	return taken
}
