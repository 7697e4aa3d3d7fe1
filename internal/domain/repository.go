package domain

import (
	"context"
	"time"
)

// CommandGateway runs device-bridge commands.
// Implementation: adb via os/exec. Failures are reported as empty output.
type CommandGateway interface {
	// Execute runs a command against the selected device and returns trimmed output.
	Execute(ctx context.Context, args ...string) string

	// ExecuteTimeout is Execute with a per-call deadline.
	ExecuteTimeout(ctx context.Context, timeout time.Duration, args ...string) string

	// ExecuteGlobal runs a command without the device selector (e.g. start-server).
	ExecuteGlobal(ctx context.Context, args ...string) string

	// Simulate reports whether commands are only printed.
	Simulate() bool
}

// Android key codes used by the recovery tactics.
const (
	KeyHome      = "KEYCODE_HOME"
	KeyBack      = "KEYCODE_BACK"
	KeyAppSwitch = "KEYCODE_APP_SWITCH"
)

// DeviceController issues input and process actions on the device.
type DeviceController interface {
	// Tap sends a single tap at the exact coordinate.
	Tap(ctx context.Context, p Point)

	// PressKey sends a key event (KeyHome, KeyBack, KeyAppSwitch).
	PressKey(ctx context.Context, keycode string)

	// ForceStop kills an application package.
	ForceStop(ctx context.Context, pkg string)

	// Launch starts a package with a generic monkey launch.
	Launch(ctx context.Context, pkg string)

	// LaunchFromLauncher starts a package through its launcher-category intent.
	LaunchFromLauncher(ctx context.Context, pkg string)
}

// DumpSource yields the lines of one diagnostic state dump.
type DumpSource interface {
	// Name identifies the source in logs.
	Name() string

	// Lines returns the dump lines, or nil when nothing could be read.
	Lines(ctx context.Context) []string
}

// ForegroundInspector reports the application currently owning the screen.
type ForegroundInspector interface {
	// Current returns the best-guess foreground identifier, or "" if unknown.
	Current(ctx context.Context) string
}

// ContextClassifier decides whether a foreground identifier is the game.
type ContextClassifier interface {
	// Classify returns the full verdict with the deciding rule.
	Classify(id string) Verdict

	// IsForeign reports whether the identifier is anything but the game.
	IsForeign(id string) bool

	// BrowserIn returns the browser package contained in id, if any.
	BrowserIn(id string) (string, bool)
}

// Randomizer is the injectable randomness source. *rand.Rand satisfies it.
type Randomizer interface {
	Intn(n int) int
	Float64() float64
}

// Sleeper blocks for a duration or until the context is cancelled.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration)
}

// RecoveryTactic is one rung of the recovery ladder.
type RecoveryTactic interface {
	// Name returns the tactic name used in logs and results.
	Name() string

	// Eligible reports whether the tactic may run for the current state.
	Eligible(state *CycleState) bool

	// Attempt runs the tactic and reports whether the ad was cleared.
	Attempt(ctx context.Context, state *CycleState) bool
}

// ServerManager makes sure the local device-bridge server is available.
type ServerManager interface {
	// IsRunning checks for a local server process.
	IsRunning() bool

	// EnsureRunning starts the server if no process is found.
	// Returns true if a start was issued.
	EnsureRunning(ctx context.Context) (started bool, err error)
}
