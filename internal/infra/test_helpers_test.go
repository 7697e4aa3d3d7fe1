package infra

import (
	"context"
	"strings"
	"time"

	"github.com/eliteGoblin/adloop/internal/domain"
)

// mockGateway is a test double for domain.CommandGateway
type mockGateway struct {
	simulate bool
	commands []string
	global   []string
	timeouts []time.Duration
	replies  map[string]string // joined args -> output
}

func newMockGateway() *mockGateway {
	return &mockGateway{replies: make(map[string]string)}
}

func (m *mockGateway) Execute(ctx context.Context, args ...string) string {
	key := strings.Join(args, " ")
	m.commands = append(m.commands, key)
	return m.replies[key]
}

func (m *mockGateway) ExecuteTimeout(ctx context.Context, timeout time.Duration, args ...string) string {
	m.timeouts = append(m.timeouts, timeout)
	return m.Execute(ctx, args...)
}

func (m *mockGateway) ExecuteGlobal(ctx context.Context, args ...string) string {
	m.global = append(m.global, strings.Join(args, " "))
	return ""
}

func (m *mockGateway) Simulate() bool {
	return m.simulate
}

// staticSource is a fixed domain.DumpSource
type staticSource struct {
	name  string
	lines []string
	reads int
}

func (s *staticSource) Name() string { return s.name }

func (s *staticSource) Lines(ctx context.Context) []string {
	s.reads++
	return s.lines
}

// Ensure test doubles implement their interfaces
var _ domain.CommandGateway = (*mockGateway)(nil)
var _ domain.DumpSource = (*staticSource)(nil)
