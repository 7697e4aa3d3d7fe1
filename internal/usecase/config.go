// Package usecase contains application business logic.
package usecase

import (
	"time"
)

// DurationRange is an inclusive range for randomized waits.
type DurationRange struct {
	Min time.Duration
	Max time.Duration
}

// DriverConfig holds game tap settings.
type DriverConfig struct {
	JitterPx    int           // Max random offset per axis on every tap
	LevelSettle time.Duration // Wait after tapping the level button
	PauseSettle time.Duration // Wait after opening the pause menu
}

// DefaultDriverConfig returns default tap settings.
func DefaultDriverConfig() DriverConfig {
	return DriverConfig{
		JitterPx:    3,
		LevelSettle: 1200 * time.Millisecond,
		PauseSettle: 800 * time.Millisecond,
	}
}

// LadderConfig holds recovery ladder timing and budgets.
type LadderConfig struct {
	// Targeted taps
	TapRounds  int
	TapPause   time.Duration // After each close tap, before the re-check
	RoundPause time.Duration // Between tap rounds

	// Relaunch verification backoff
	BackoffFactor float64
	BackoffCap    time.Duration

	// Minimize and relaunch
	MinimizeWait    time.Duration
	MinimizeRetries int
	MinimizeBackoff time.Duration

	// Back burst
	BackPressesMin int
	BackPressesMax int
	BackDelay      DurationRange

	// Home burst
	HomePresses int
	HomePause   time.Duration
	HomeSettle  time.Duration

	// App switcher
	SwitcherOpenWait   time.Duration
	SwitcherSelectWait time.Duration

	// Mega escape
	StickyThreshold int
	MegaBackPresses int
	MegaBackPause   time.Duration
	MegaHomePresses int
	MegaHomePause   time.Duration
	MegaPhasePause  time.Duration
	BrowserKillWait time.Duration
	MegaRetries     int
	MegaBackoff     time.Duration

	// Nuclear
	NuclearStopWait time.Duration
	NuclearRetries  int
	NuclearBackoff  time.Duration
	AppRestartWait  time.Duration
}

// DefaultLadderConfig returns default ladder configuration.
func DefaultLadderConfig() LadderConfig {
	return LadderConfig{
		TapRounds:  2,
		TapPause:   250 * time.Millisecond,
		RoundPause: 400 * time.Millisecond,

		BackoffFactor: 1.8,
		BackoffCap:    8 * time.Second,

		MinimizeWait:    800 * time.Millisecond,
		MinimizeRetries: 4,
		MinimizeBackoff: 1200 * time.Millisecond,

		BackPressesMin: 4,
		BackPressesMax: 6,
		BackDelay:      DurationRange{Min: 500 * time.Millisecond, Max: 800 * time.Millisecond},

		HomePresses: 3,
		HomePause:   200 * time.Millisecond,
		HomeSettle:  500 * time.Millisecond,

		SwitcherOpenWait:   600 * time.Millisecond,
		SwitcherSelectWait: 800 * time.Millisecond,

		StickyThreshold: 2,
		MegaBackPresses: 3,
		MegaBackPause:   300 * time.Millisecond,
		MegaHomePresses: 2,
		MegaHomePause:   200 * time.Millisecond,
		MegaPhasePause:  500 * time.Millisecond,
		BrowserKillWait: 800 * time.Millisecond,
		MegaRetries:     4,
		MegaBackoff:     1200 * time.Millisecond,

		NuclearStopWait: 1500 * time.Millisecond,
		NuclearRetries:  5,
		NuclearBackoff:  2 * time.Second,
		AppRestartWait:  12 * time.Second,
	}
}

// CycleConfig holds per-cycle waits.
type CycleConfig struct {
	LevelTapSettle time.Duration // Extra wait after an owed level tap
	AdWait         time.Duration // Wait after the trigger for the ad to appear
}

// DefaultCycleConfig returns default cycle configuration.
func DefaultCycleConfig() CycleConfig {
	return CycleConfig{
		LevelTapSettle: 500 * time.Millisecond,
		AdWait:         3500 * time.Millisecond,
	}
}
