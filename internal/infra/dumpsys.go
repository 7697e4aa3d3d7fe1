package infra

import (
	"bufio"
	"context"
	"strings"
	"time"

	"github.com/eliteGoblin/adloop/internal/domain"
)

// DumpTimeout is the short deadline applied to state-dump calls.
const DumpTimeout = 5 * time.Second

// DumpsysSource reads one `dumpsys` service through the gateway.
type DumpsysSource struct {
	gw      domain.CommandGateway
	service []string
	timeout time.Duration
}

// NewDumpsysSource creates a source for `adb shell dumpsys <service...>`.
func NewDumpsysSource(gw domain.CommandGateway, service ...string) *DumpsysSource {
	return &DumpsysSource{gw: gw, service: service, timeout: DumpTimeout}
}

// DefaultDumpSources returns the window dump followed by the activity dump.
func DefaultDumpSources(gw domain.CommandGateway) []domain.DumpSource {
	return []domain.DumpSource{
		NewDumpsysSource(gw, "window", "windows"),
		NewDumpsysSource(gw, "activity", "activities"),
	}
}

// Name returns "dumpsys <service...>".
func (s *DumpsysSource) Name() string {
	return "dumpsys " + strings.Join(s.service, " ")
}

// Lines runs the dump and splits its output into lines.
func (s *DumpsysSource) Lines(ctx context.Context) []string {
	args := append([]string{"shell", "dumpsys"}, s.service...)
	out := s.gw.ExecuteTimeout(ctx, s.timeout, args...)
	if out == "" {
		return nil
	}
	return splitLines(out)
}

func splitLines(text string) []string {
	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(text))
	// window dumps can contain very long lines
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines
}

// Ensure DumpsysSource implements domain.DumpSource.
var _ domain.DumpSource = (*DumpsysSource)(nil)
