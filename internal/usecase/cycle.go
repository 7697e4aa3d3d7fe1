package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/eliteGoblin/adloop/internal/domain"
)

// CycleRunner runs one trigger-and-recover ad cycle.
type CycleRunner struct {
	config   CycleConfig
	game     domain.Game
	driver   *Driver
	detector *Detector
	ladder   Recoverer
	sleeper  domain.Sleeper
	logger   *zap.Logger
}

// NewCycleRunner creates a cycle orchestrator.
func NewCycleRunner(
	config CycleConfig,
	game domain.Game,
	driver *Driver,
	detector *Detector,
	ladder Recoverer,
	sleeper domain.Sleeper,
	logger *zap.Logger,
) *CycleRunner {
	return &CycleRunner{
		config:   config,
		game:     game,
		driver:   driver,
		detector: detector,
		ladder:   ladder,
		sleeper:  sleeper,
		logger:   logger,
	}
}

// RunCycle triggers an ad and clears it. The ladder always runs after the
// trigger; the verdict on the post-trigger screen is logged, not gated on.
// On success the cycle counter advances and the trigger button alternates;
// on failure state is left as the ladder left it.
func (c *CycleRunner) RunCycle(ctx context.Context, state *domain.CycleState) bool {
	c.logger.Info("starting ad cycle",
		zap.Int("cycle", state.Cycle+1),
		zap.String("button", string(state.Mode)))

	if state.NeedsLevelTap {
		c.driver.EnterGame(ctx)
		state.NeedsLevelTap = false
		c.sleeper.Sleep(ctx, c.config.LevelTapSettle)
	}

	c.driver.Trigger(ctx, state)

	c.logger.Debug("waiting for ad to appear", zap.Duration("wait", c.config.AdWait))
	c.sleeper.Sleep(ctx, c.config.AdWait)

	current, verdict := c.detector.Inspect(ctx)
	if state.ObserveForeground(current, c.game.Package) {
		c.logger.Warn("sticky ad",
			zap.String("foreground", current),
			zap.Int("sticky_count", state.StickyCount))
	}
	c.logger.Info("clearing ad",
		zap.String("foreground", current),
		zap.Bool("foreign", verdict.Foreign),
		zap.String("reason", verdict.Reason))

	result := c.ladder.Recover(ctx, state)

	if result.Cleared && !c.detector.AdPlaying(ctx) {
		state.Complete()
		c.logger.Info("ad cycle complete",
			zap.Int("cycle", state.Cycle),
			zap.String("tactic", result.Tactic),
			zap.String("next_button", string(state.Mode)))
		return true
	}

	c.logger.Warn("ad cycle incomplete, will retry",
		zap.Int("cycle", state.Cycle+1),
		zap.Strings("attempted", result.Attempted))
	return false
}
