package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/eliteGoblin/adloop/internal/domain"
)

// Tactic names, in ladder order.
const (
	TacticTargetedTap      = "targeted-tap"
	TacticMinimizeRelaunch = "minimize-relaunch"
	TacticBackBurst        = "back-burst"
	TacticHomeBurst        = "home-burst"
	TacticAppSwitcher      = "app-switcher"
	TacticMegaEscape       = "mega-escape"
	TacticNuclear          = "nuclear"
)

// recoveryKit is what every tactic needs to act on the device and check the result.
type recoveryKit struct {
	config   LadderConfig
	game     domain.Game
	device   domain.DeviceController
	driver   *Driver
	detector *Detector
	rng      domain.Randomizer
	sleeper  domain.Sleeper
	logger   *zap.Logger
}

// cleared reports whether a fresh check shows the game (or nothing foreign).
func (k *recoveryKit) cleared(ctx context.Context) bool {
	return !k.detector.AdPlaying(ctx)
}

// relaunchAndVerify relaunches the game through its launcher intent until it
// is verified in the foreground, backing off between attempts.
func (k *recoveryKit) relaunchAndVerify(ctx context.Context, retries int, backoff time.Duration) bool {
	for attempt := 1; attempt <= retries; attempt++ {
		if ctx.Err() != nil {
			return false
		}
		k.logger.Debug("relaunch attempt",
			zap.Int("attempt", attempt),
			zap.Int("retries", retries),
			zap.Duration("backoff", backoff))

		k.device.LaunchFromLauncher(ctx, k.game.Package)
		k.sleeper.Sleep(ctx, backoff)

		top := k.detector.Foreground(ctx)
		if top != "" && strings.Contains(top, k.game.Package) && k.cleared(ctx) {
			k.logger.Info("relaunch verified game is foregrounded", zap.Int("attempt", attempt))
			return true
		}

		backoff = time.Duration(float64(backoff) * k.config.BackoffFactor)
		if backoff > k.config.BackoffCap {
			backoff = k.config.BackoffCap
		}
	}

	k.logger.Warn("relaunch verification failed", zap.Int("retries", retries))
	return false
}

func (k *recoveryKit) pressKeys(ctx context.Context, keycode string, n int, pause time.Duration) {
	for i := 0; i < n; i++ {
		k.device.PressKey(ctx, keycode)
		k.sleeper.Sleep(ctx, pause)
	}
}

// always is embedded by tactics that have no eligibility condition.
type always struct{}

func (always) Eligible(*domain.CycleState) bool { return true }

// TargetedTapTactic taps the known close-button positions.
type TargetedTapTactic struct {
	always
	kit *recoveryKit
}

func (t *TargetedTapTactic) Name() string { return TacticTargetedTap }

// Attempt taps every close button for a bounded number of rounds and stops
// as soon as a re-check shows the game.
func (t *TargetedTapTactic) Attempt(ctx context.Context, _ *domain.CycleState) bool {
	k := t.kit
	for round := 1; round <= k.config.TapRounds; round++ {
		for _, p := range k.game.Layout.CloseButtons {
			if ctx.Err() != nil {
				return false
			}
			k.driver.Tap(ctx, p)
			k.sleeper.Sleep(ctx, k.config.TapPause)
			if k.cleared(ctx) {
				k.logger.Info("ad cleared by tap", zap.Int("round", round))
				return true
			}
		}
		k.sleeper.Sleep(ctx, k.config.RoundPause)
	}
	return false
}

// MinimizeRelaunchTactic sends HOME and relaunches the game without killing it.
type MinimizeRelaunchTactic struct {
	always
	kit *recoveryKit
}

func (t *MinimizeRelaunchTactic) Name() string { return TacticMinimizeRelaunch }

func (t *MinimizeRelaunchTactic) Attempt(ctx context.Context, _ *domain.CycleState) bool {
	k := t.kit
	k.device.PressKey(ctx, domain.KeyHome)
	k.sleeper.Sleep(ctx, k.config.MinimizeWait)
	if !k.relaunchAndVerify(ctx, k.config.MinimizeRetries, k.config.MinimizeBackoff) {
		return false
	}
	return k.cleared(ctx)
}

// BackBurstTactic presses BACK a random number of times.
type BackBurstTactic struct {
	always
	kit *recoveryKit
}

func (t *BackBurstTactic) Name() string { return TacticBackBurst }

func (t *BackBurstTactic) Attempt(ctx context.Context, _ *domain.CycleState) bool {
	k := t.kit
	presses := intBetween(k.rng, k.config.BackPressesMin, k.config.BackPressesMax)
	k.logger.Info("back button burst", zap.Int("presses", presses))

	for i := 0; i < presses; i++ {
		if ctx.Err() != nil {
			return false
		}
		k.device.PressKey(ctx, domain.KeyBack)
		k.sleeper.Sleep(ctx, durationBetween(k.rng, k.config.BackDelay))

		// Check every second press
		if i%2 == 1 && k.cleared(ctx) {
			k.logger.Info("back button worked", zap.Int("presses", i+1))
			return true
		}
	}
	return k.cleared(ctx)
}

// HomeBurstTactic presses HOME a fixed number of times.
type HomeBurstTactic struct {
	always
	kit *recoveryKit
}

func (t *HomeBurstTactic) Name() string { return TacticHomeBurst }

func (t *HomeBurstTactic) Attempt(ctx context.Context, _ *domain.CycleState) bool {
	k := t.kit
	k.pressKeys(ctx, domain.KeyHome, k.config.HomePresses, k.config.HomePause)
	k.sleeper.Sleep(ctx, k.config.HomeSettle)
	return k.cleared(ctx)
}

// AppSwitcherTactic reselects the game from the recent-apps view.
type AppSwitcherTactic struct {
	always
	kit *recoveryKit
}

func (t *AppSwitcherTactic) Name() string { return TacticAppSwitcher }

func (t *AppSwitcherTactic) Attempt(ctx context.Context, _ *domain.CycleState) bool {
	k := t.kit
	k.device.PressKey(ctx, domain.KeyAppSwitch)
	k.sleeper.Sleep(ctx, k.config.SwitcherOpenWait)
	k.driver.Tap(ctx, k.game.Layout.SwitcherCenter)
	k.sleeper.Sleep(ctx, k.config.SwitcherSelectWait)
	return k.cleared(ctx)
}

// MegaEscapeTactic is reserved for sticky ads: a fixed back/home/switcher
// sequence, a browser kill if one is in front, then a verified relaunch.
type MegaEscapeTactic struct {
	kit *recoveryKit
}

func (t *MegaEscapeTactic) Name() string { return TacticMegaEscape }

// Eligible only once the same foreign context has stuck around long enough.
func (t *MegaEscapeTactic) Eligible(state *domain.CycleState) bool {
	return state.StickyCount >= t.kit.config.StickyThreshold
}

func (t *MegaEscapeTactic) Attempt(ctx context.Context, state *domain.CycleState) bool {
	k := t.kit
	k.logger.Info("sticky ad, mega escape", zap.Int("sticky_count", state.StickyCount))

	k.pressKeys(ctx, domain.KeyBack, k.config.MegaBackPresses, k.config.MegaBackPause)
	k.sleeper.Sleep(ctx, k.config.MegaPhasePause)

	k.pressKeys(ctx, domain.KeyHome, k.config.MegaHomePresses, k.config.MegaHomePause)
	k.sleeper.Sleep(ctx, k.config.MegaPhasePause)

	k.device.PressKey(ctx, domain.KeyAppSwitch)
	k.sleeper.Sleep(ctx, k.config.MegaPhasePause)
	k.device.PressKey(ctx, domain.KeyHome)
	k.sleeper.Sleep(ctx, k.config.MegaPhasePause)

	// A browser or custom tab can keep reopening the ad
	top := k.detector.Foreground(ctx)
	if browser, ok := k.detector.Classifier().BrowserIn(top); ok {
		k.logger.Info("force-stopping browser ad host", zap.String("browser", browser))
		k.device.ForceStop(ctx, browser)
		k.sleeper.Sleep(ctx, k.config.BrowserKillWait)
	}

	return k.relaunchAndVerify(ctx, k.config.MegaRetries, k.config.MegaBackoff)
}

// NuclearTactic force-stops the game and relaunches it.
type NuclearTactic struct {
	always
	kit *recoveryKit
}

func (t *NuclearTactic) Name() string { return TacticNuclear }

// Attempt always runs to completion; on failed verification it still waits
// AppRestartWait so the next cycle starts on a settled device.
func (t *NuclearTactic) Attempt(ctx context.Context, _ *domain.CycleState) bool {
	k := t.kit
	k.logger.Warn("ad won't die, force stopping game", zap.String("package", k.game.Package))

	k.device.ForceStop(ctx, k.game.Package)
	k.sleeper.Sleep(ctx, k.config.NuclearStopWait)

	if k.relaunchAndVerify(ctx, k.config.NuclearRetries, k.config.NuclearBackoff) {
		return true
	}
	k.sleeper.Sleep(ctx, k.config.AppRestartWait)
	return false
}

// Ensure tactics implement domain.RecoveryTactic.
var (
	_ domain.RecoveryTactic = (*TargetedTapTactic)(nil)
	_ domain.RecoveryTactic = (*MinimizeRelaunchTactic)(nil)
	_ domain.RecoveryTactic = (*BackBurstTactic)(nil)
	_ domain.RecoveryTactic = (*HomeBurstTactic)(nil)
	_ domain.RecoveryTactic = (*AppSwitcherTactic)(nil)
	_ domain.RecoveryTactic = (*MegaEscapeTactic)(nil)
	_ domain.RecoveryTactic = (*NuclearTactic)(nil)
)
