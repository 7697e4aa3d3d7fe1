package infra

import (
	"testing"
)

func TestExecModeFor(t *testing.T) {
	if got := ExecModeFor(true); got != ExecModeSimulate {
		t.Errorf("ExecModeFor(true) = %q, want %q", got, ExecModeSimulate)
	}
	if got := ExecModeFor(false); got != ExecModeLive {
		t.Errorf("ExecModeFor(false) = %q, want %q", got, ExecModeLive)
	}
}

func TestExecMode_String(t *testing.T) {
	tests := []struct {
		mode     ExecMode
		expected string
	}{
		{ExecModeLive, "live (commands run on device)"},
		{ExecModeSimulate, "simulate (commands printed only)"},
		{ExecMode("invalid"), "unknown"},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			if got := tt.mode.String(); got != tt.expected {
				t.Errorf("ExecMode.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}
