// Package daemon implements the long-running ad loop and the diagnostic sampler.
package daemon

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/eliteGoblin/adloop/internal/domain"
	"github.com/eliteGoblin/adloop/internal/usecase"
)

// CycleRunner runs a single ad cycle.
type CycleRunner interface {
	RunCycle(ctx context.Context, state *domain.CycleState) bool
}

// LevelEntrant taps into a level from the game's main screen.
type LevelEntrant interface {
	EnterGame(ctx context.Context)
}

// ForegroundReader returns the current foreground identifier.
type ForegroundReader interface {
	Foreground(ctx context.Context) string
}

// WatcherConfig holds watcher loop configuration.
type WatcherConfig struct {
	Cooldown         usecase.DurationRange // Random pause between cycles
	FailureExtraWait time.Duration         // Added to the cooldown after a failed cycle
	StartupStopWait  time.Duration         // Wait after the startup force-stop
	GameReadyDelay   time.Duration         // Wait for the game to draw its main screen
	SettleDelay      time.Duration         // Extra wait for startup splash ads
	StartMode        domain.ButtonMode     // Trigger button for the first cycle
}

// DefaultWatcherConfig returns default watcher configuration.
func DefaultWatcherConfig() WatcherConfig {
	return WatcherConfig{
		Cooldown:         usecase.DurationRange{Min: 1900 * time.Millisecond, Max: 2200 * time.Millisecond},
		FailureExtraWait: 2 * time.Second,
		StartupStopWait:  1 * time.Second,
		GameReadyDelay:   6 * time.Second,
		SettleDelay:      6 * time.Second,
		StartMode:        domain.ButtonHome,
	}
}

// Watcher drives the game through ad cycles until its context is cancelled.
type Watcher struct {
	config   WatcherConfig
	game     domain.Game
	device   domain.DeviceController
	entrant  LevelEntrant
	reader   ForegroundReader
	runner   CycleRunner
	server   domain.ServerManager
	rng      domain.Randomizer
	sleeper  domain.Sleeper
	logger   *zap.Logger
	state    *domain.CycleState
	failures int
}

// NewWatcher creates a new watcher. server may be nil when no local adb
// server check is wanted.
func NewWatcher(
	config WatcherConfig,
	game domain.Game,
	device domain.DeviceController,
	entrant LevelEntrant,
	reader ForegroundReader,
	runner CycleRunner,
	server domain.ServerManager,
	rng domain.Randomizer,
	sleeper domain.Sleeper,
	logger *zap.Logger,
) *Watcher {
	return &Watcher{
		config:  config,
		game:    game,
		device:  device,
		entrant: entrant,
		reader:  reader,
		runner:  runner,
		server:  server,
		rng:     rng,
		sleeper: sleeper,
		logger:  logger,
		state:   domain.NewCycleState(config.StartMode),
	}
}

// State returns the cycle state carried across iterations.
func (w *Watcher) State() *domain.CycleState {
	return w.state
}

// Failures returns the number of failed cycles so far.
func (w *Watcher) Failures() int {
	return w.failures
}

// Run starts the game and loops ad cycles.
// This blocks until context is canceled, then returns nil. A panic inside
// the loop is recovered and returned as an error.
func (w *Watcher) Run(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("watcher crashed",
				zap.Any("panic", r),
				zap.Int("cycles", w.state.Cycle),
				zap.Stack("stack"))
			err = fmt.Errorf("watcher panic: %v", r)
		}
	}()

	w.ensureServer(ctx)
	w.startGame(ctx)

	w.logger.Info("watcher started",
		zap.String("package", w.game.Package),
		zap.String("button", string(w.state.Mode)))

	for {
		if ctx.Err() != nil {
			w.logger.Info("watcher stopping",
				zap.Int("cycles", w.state.Cycle),
				zap.Int("failures", w.failures))
			return nil
		}

		ok := w.runner.RunCycle(ctx, w.state)

		cooldown := w.config.Cooldown.Pick(w.rng)
		if !ok {
			w.failures++
			cooldown += w.config.FailureExtraWait
		}
		w.logger.Debug("cooldown", zap.Duration("wait", cooldown))
		w.sleeper.Sleep(ctx, cooldown)
	}
}

// ensureServer starts a local adb server if none is running.
func (w *Watcher) ensureServer(ctx context.Context) {
	if w.server == nil {
		return
	}
	started, err := w.server.EnsureRunning(ctx)
	if err != nil {
		w.logger.Warn("adb server check failed", zap.Error(err))
		return
	}
	if started {
		w.logger.Info("adb server started")
	}
}

// startGame cold-starts the game and taps into the first level.
func (w *Watcher) startGame(ctx context.Context) {
	pkg := w.game.Package
	w.logger.Info("starting game", zap.String("package", pkg))

	w.device.ForceStop(ctx, pkg)
	w.sleeper.Sleep(ctx, w.config.StartupStopWait)

	w.device.LaunchFromLauncher(ctx, pkg)
	w.sleeper.Sleep(ctx, w.config.GameReadyDelay)
	w.sleeper.Sleep(ctx, w.config.SettleDelay)

	if top := w.reader.Foreground(ctx); !strings.Contains(top, pkg) {
		w.logger.Warn("game not in foreground after launch, retrying",
			zap.String("foreground", top))
		w.device.Launch(ctx, pkg)
		w.sleeper.Sleep(ctx, w.config.GameReadyDelay)
	}

	w.entrant.EnterGame(ctx)
}
