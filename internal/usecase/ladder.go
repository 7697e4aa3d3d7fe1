package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/eliteGoblin/adloop/internal/domain"
)

// Recoverer clears an ad that is assumed to be on screen.
type Recoverer interface {
	Recover(ctx context.Context, state *domain.CycleState) domain.RecoveryResult
}

// Ladder runs recovery tactics in order until one clears the ad.
type Ladder struct {
	tactics []domain.RecoveryTactic
	logger  *zap.Logger
}

// NewLadder creates a ladder with custom tactics (for testing).
func NewLadder(logger *zap.Logger, tactics ...domain.RecoveryTactic) *Ladder {
	return &Ladder{tactics: tactics, logger: logger}
}

// NewRecoveryLadder creates the standard seven-step escalation for a game.
func NewRecoveryLadder(
	config LadderConfig,
	game domain.Game,
	device domain.DeviceController,
	driver *Driver,
	detector *Detector,
	rng domain.Randomizer,
	sleeper domain.Sleeper,
	logger *zap.Logger,
) *Ladder {
	kit := &recoveryKit{
		config:   config,
		game:     game,
		device:   device,
		driver:   driver,
		detector: detector,
		rng:      rng,
		sleeper:  sleeper,
		logger:   logger,
	}
	return NewLadder(logger,
		&TargetedTapTactic{kit: kit},
		&MinimizeRelaunchTactic{kit: kit},
		&BackBurstTactic{kit: kit},
		&HomeBurstTactic{kit: kit},
		&AppSwitcherTactic{kit: kit},
		&MegaEscapeTactic{kit: kit},
		&NuclearTactic{kit: kit},
	)
}

// Tactics returns the tactic names in order.
func (l *Ladder) Tactics() []string {
	names := make([]string, len(l.tactics))
	for i, t := range l.tactics {
		names[i] = t.Name()
	}
	return names
}

// Recover escalates through the tactics. It does not check whether an ad
// is actually showing first; every tactic only decides by its own re-check.
func (l *Ladder) Recover(ctx context.Context, state *domain.CycleState) domain.RecoveryResult {
	result := domain.RecoveryResult{Attempted: make([]string, 0, len(l.tactics))}

	for _, tactic := range l.tactics {
		if ctx.Err() != nil {
			break
		}
		if !tactic.Eligible(state) {
			l.logger.Debug("tactic not eligible", zap.String("tactic", tactic.Name()))
			continue
		}

		l.logger.Info("trying tactic", zap.String("tactic", tactic.Name()))
		result.Attempted = append(result.Attempted, tactic.Name())

		if tactic.Attempt(ctx, state) {
			l.logger.Info("ad cleared", zap.String("tactic", tactic.Name()))
			state.ClearSticky()
			result.Cleared = true
			result.Tactic = tactic.Name()
			return result
		}
	}

	if ctx.Err() != nil {
		l.logger.Debug("recovery interrupted",
			zap.Strings("attempted", result.Attempted),
			zap.Error(ctx.Err()))
		return result
	}

	l.logger.Warn("all recovery tactics failed",
		zap.Strings("attempted", result.Attempted))
	return result
}

// Ensure Ladder implements Recoverer.
var _ Recoverer = (*Ladder)(nil)
