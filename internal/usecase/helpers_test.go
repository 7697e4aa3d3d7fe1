package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/eliteGoblin/adloop/internal/domain"
	"github.com/eliteGoblin/adloop/internal/policy"
)

const (
	gamePkg   = "com.balloon.master.cube.match"
	adPkg     = "com.applovin.sdk"
	chromePkg = "com.android.chrome"
)

// mockDevice implements domain.DeviceController for testing
type mockDevice struct {
	actions []string
}

func (m *mockDevice) Tap(ctx context.Context, p domain.Point) {
	m.actions = append(m.actions, fmt.Sprintf("tap %d %d", p.X, p.Y))
}

func (m *mockDevice) PressKey(ctx context.Context, keycode string) {
	m.actions = append(m.actions, "key "+keycode)
}

func (m *mockDevice) ForceStop(ctx context.Context, pkg string) {
	m.actions = append(m.actions, "force-stop "+pkg)
}

func (m *mockDevice) Launch(ctx context.Context, pkg string) {
	m.actions = append(m.actions, "launch "+pkg)
}

func (m *mockDevice) LaunchFromLauncher(ctx context.Context, pkg string) {
	m.actions = append(m.actions, "launch-launcher "+pkg)
}

func (m *mockDevice) count(prefix string) int {
	n := 0
	for _, a := range m.actions {
		if strings.HasPrefix(a, prefix) {
			n++
		}
	}
	return n
}

func (m *mockDevice) index(action string) int {
	for i, a := range m.actions {
		if a == action {
			return i
		}
	}
	return -1
}

// scriptedInspector returns ids in order and repeats the last one forever
type scriptedInspector struct {
	ids   []string
	calls int
}

func (s *scriptedInspector) Current(ctx context.Context) string {
	s.calls++
	if len(s.ids) == 0 {
		return ""
	}
	i := s.calls - 1
	if i >= len(s.ids) {
		i = len(s.ids) - 1
	}
	return s.ids[i]
}

// repeat builds a script of n copies of id
func repeat(id string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = id
	}
	return out
}

// recordingSleeper implements domain.Sleeper without waiting
type recordingSleeper struct {
	slept []time.Duration
}

func (r *recordingSleeper) Sleep(ctx context.Context, d time.Duration) {
	r.slept = append(r.slept, d)
}

func (r *recordingSleeper) total() time.Duration {
	var sum time.Duration
	for _, d := range r.slept {
		sum += d
	}
	return sum
}

func (r *recordingSleeper) contains(d time.Duration) bool {
	for _, s := range r.slept {
		if s == d {
			return true
		}
	}
	return false
}

// harness wires the real usecase stack around test doubles
type harness struct {
	game      domain.Game
	device    *mockDevice
	inspector *scriptedInspector
	sleeper   *recordingSleeper
	detector  *Detector
	driver    *Driver
	ladder    *Ladder
	config    LadderConfig
}

func newHarness(script ...string) *harness {
	game, err := policy.NewRegistry().Game(policy.DefaultGameID)
	if err != nil {
		panic(err)
	}

	h := &harness{
		game:      game,
		device:    &mockDevice{},
		inspector: &scriptedInspector{ids: script},
		sleeper:   &recordingSleeper{},
		config:    DefaultLadderConfig(),
	}
	rng := rand.New(rand.NewSource(1))
	logger := zap.NewNop()

	h.detector = NewDetector(h.inspector, policy.NewClassifier(game.Package, policy.DefaultSignatures()))
	h.driver = NewDriver(DefaultDriverConfig(), game.Layout, h.device, rng, h.sleeper, logger)
	h.ladder = NewRecoveryLadder(h.config, game, h.device, h.driver, h.detector, rng, h.sleeper, logger)
	return h
}

func (h *harness) kit() *recoveryKit {
	return &recoveryKit{
		config:   h.config,
		game:     h.game,
		device:   h.device,
		driver:   h.driver,
		detector: h.detector,
		rng:      rand.New(rand.NewSource(1)),
		sleeper:  h.sleeper,
		logger:   zap.NewNop(),
	}
}

// stubTactic is a scripted domain.RecoveryTactic
type stubTactic struct {
	name     string
	eligible bool
	succeed  bool
	attempts int
}

func (s *stubTactic) Name() string { return s.name }
func (s *stubTactic) Eligible(*domain.CycleState) bool { return s.eligible }
func (s *stubTactic) Attempt(context.Context, *domain.CycleState) bool {
	s.attempts++
	return s.succeed
}

// stubRecoverer returns a fixed result
type stubRecoverer struct {
	result domain.RecoveryResult
	calls  int
}

func (s *stubRecoverer) Recover(ctx context.Context, state *domain.CycleState) domain.RecoveryResult {
	s.calls++
	return s.result
}
