package infra

// ExecMode represents how device commands are carried out.
type ExecMode string

const (
	// ExecModeLive runs every adb command against the device.
	ExecModeLive ExecMode = "live"
	// ExecModeSimulate prints adb commands without running them.
	ExecModeSimulate ExecMode = "simulate"
)

// ExecModeFor maps the --dry-run flag to an ExecMode.
func ExecModeFor(dryRun bool) ExecMode {
	if dryRun {
		return ExecModeSimulate
	}
	return ExecModeLive
}

// String returns a human-readable description of the mode.
func (m ExecMode) String() string {
	switch m {
	case ExecModeLive:
		return "live (commands run on device)"
	case ExecModeSimulate:
		return "simulate (commands printed only)"
	default:
		return "unknown"
	}
}
