package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/eliteGoblin/adloop/internal/domain"
)

// Driver issues the game's tap sequences. It holds no cycle state; the
// owed level tap is recorded on the CycleState passed in.
type Driver struct {
	config  DriverConfig
	layout  domain.GameLayout
	device  domain.DeviceController
	rng     domain.Randomizer
	sleeper domain.Sleeper
	logger  *zap.Logger
}

// NewDriver creates a game interaction driver.
func NewDriver(
	config DriverConfig,
	layout domain.GameLayout,
	device domain.DeviceController,
	rng domain.Randomizer,
	sleeper domain.Sleeper,
	logger *zap.Logger,
) *Driver {
	return &Driver{
		config:  config,
		layout:  layout,
		device:  device,
		rng:     rng,
		sleeper: sleeper,
		logger:  logger,
	}
}

// Tap taps p with a small random offset on each axis.
func (d *Driver) Tap(ctx context.Context, p domain.Point) {
	d.device.Tap(ctx, jitter(d.rng, p, d.config.JitterPx))
}

// EnterGame taps the level button to enter game mode.
func (d *Driver) EnterGame(ctx context.Context) {
	d.logger.Info("entering game mode")
	d.Tap(ctx, d.layout.LevelButton)
	d.sleeper.Sleep(ctx, d.config.LevelSettle)
}

// OpenPause opens the in-game pause menu.
func (d *Driver) OpenPause(ctx context.Context) {
	d.logger.Debug("opening pause menu")
	d.Tap(ctx, d.layout.PauseButton)
	d.sleeper.Sleep(ctx, d.config.PauseSettle)
}

// Trigger opens the pause menu and taps the button for mode, which spawns
// an ad. Exiting to the menu leaves a level tap owed; retry does not.
func (d *Driver) Trigger(ctx context.Context, state *domain.CycleState) {
	d.OpenPause(ctx)

	switch state.Mode {
	case domain.ButtonHome:
		d.logger.Info("tapping home button (triggers ad)")
		d.Tap(ctx, d.layout.HomeButton)
		state.NeedsLevelTap = true
	default:
		d.logger.Info("tapping retry button (triggers ad)")
		d.Tap(ctx, d.layout.RetryButton)
		state.NeedsLevelTap = false
	}
}
