// Package domain contains core business entities and interfaces.
// This is the innermost layer in Clean Architecture - no external dependencies.
package domain

// Point is a screen coordinate in device pixels.
type Point struct {
	X int
	Y int
}

// ButtonMode identifies which pause-menu button triggers the next ad.
type ButtonMode string

const (
	// ButtonHome exits to the menu screen; a level tap is owed afterwards.
	ButtonHome ButtonMode = "home"
	// ButtonRetry restarts the level and keeps the game in play mode.
	ButtonRetry ButtonMode = "retry"
)

// Next returns the other button mode.
func (m ButtonMode) Next() ButtonMode {
	if m == ButtonHome {
		return ButtonRetry
	}
	return ButtonHome
}

// GameLayout holds the tap targets for one game on one screen size.
type GameLayout struct {
	LevelButton    Point   // Main screen level button (enters game mode)
	PauseButton    Point   // In-game pause button
	HomeButton     Point   // Pause menu -> Home (triggers ad)
	RetryButton    Point   // Pause menu -> Retry (triggers ad)
	SwitcherCenter Point   // Where the game card sits in the recents view
	CloseButtons   []Point // Common ad close-button positions, tried in order
}

// Game is the automation target.
type Game struct {
	ID      string
	Name    string
	Package string
	Layout  GameLayout
}

// Verdict is the classifier's decision about a foreground identifier.
type Verdict struct {
	Foreign bool
	Reason  string
}

// Classification reasons, one per classifier rule.
const (
	ReasonUnknown      = "unknown"
	ReasonGame         = "game"
	ReasonDangerous    = "dangerous"
	ReasonAdActivity   = "ad-activity"
	ReasonAdSDK        = "ad-sdk"
	ReasonBrowser      = "browser"
	ReasonUnrecognized = "unrecognized"
)

// CycleState is the orchestrator's process-lifetime state.
// It is owned by a single loop and passed by pointer into each cycle.
type CycleState struct {
	Cycle         int        // Completed (successful) ad cycles
	Mode          ButtonMode // Button used for the next trigger
	NeedsLevelTap bool       // A level tap is owed before the next trigger
	StickyCount   int        // Consecutive repeats of the same foreign identifier
	LastForeign   string     // Last observed identifier
}

// NewCycleState returns the initial state, starting with the given button.
func NewCycleState(start ButtonMode) *CycleState {
	if start == "" {
		start = ButtonHome
	}
	return &CycleState{Mode: start}
}

// ObserveForeground updates the sticky-ad tracking with a fresh foreground
// sample. The counter only grows when the same non-empty, non-game identifier
// is seen twice in a row; any other sample becomes the new baseline.
// Returns true if the counter was incremented.
func (s *CycleState) ObserveForeground(id, gamePackage string) bool {
	if id != "" && id == s.LastForeign && id != gamePackage {
		s.StickyCount++
		return true
	}
	s.LastForeign = id
	s.StickyCount = 0
	return false
}

// ClearSticky resets the sticky counter after an ad was cleared.
func (s *CycleState) ClearSticky() {
	s.StickyCount = 0
}

// Complete records a successful cycle and alternates the trigger button.
func (s *CycleState) Complete() {
	s.Cycle++
	s.Mode = s.Mode.Next()
}

// RecoveryResult captures what happened during a single ladder run.
type RecoveryResult struct {
	Cleared   bool
	Tactic    string   // Tactic that cleared the ad, empty if none did
	Attempted []string // Tactics attempted, in order
}
