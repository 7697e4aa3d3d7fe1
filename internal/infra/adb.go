// Package infra implements infrastructure concerns (adb, dumps, processes).
package infra

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/eliteGoblin/adloop/internal/domain"
)

// DefaultCommandTimeout bounds every adb call that has no explicit timeout.
const DefaultCommandTimeout = 20 * time.Second

// CommandRunner executes a process and returns its stdout.
// Replaced in tests to avoid touching a real device.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs the command with os/exec, discarding stderr.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = nil
	cmd.Stderr = nil
	return cmd.Output()
}

// ADBGateway implements domain.CommandGateway on top of the adb binary.
type ADBGateway struct {
	adbPath string
	serial  string
	mode    ExecMode
	timeout time.Duration
	run     CommandRunner
	out     io.Writer
	logger  *zap.Logger
}

// GatewayOption customizes an ADBGateway.
type GatewayOption func(*ADBGateway)

// WithRunner replaces the process runner.
func WithRunner(r CommandRunner) GatewayOption {
	return func(g *ADBGateway) { g.run = r }
}

// WithOutput sets where dry-run commands are printed (default stdout).
func WithOutput(w io.Writer) GatewayOption {
	return func(g *ADBGateway) { g.out = w }
}

// WithTimeout overrides DefaultCommandTimeout. Zero disables the timeout.
func WithTimeout(d time.Duration) GatewayOption {
	return func(g *ADBGateway) { g.timeout = d }
}

// NewADBGateway creates a gateway for one device serial.
// An empty serial lets adb pick the only connected device.
func NewADBGateway(adbPath, serial string, mode ExecMode, logger *zap.Logger, opts ...GatewayOption) *ADBGateway {
	if adbPath == "" {
		adbPath = "adb"
	}
	g := &ADBGateway{
		adbPath: adbPath,
		serial:  serial,
		mode:    mode,
		timeout: DefaultCommandTimeout,
		run:     ExecRunner,
		out:     os.Stdout,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Args builds the full adb argument list with the device selector.
func (g *ADBGateway) Args(args ...string) []string {
	full := make([]string, 0, len(args)+2)
	if g.serial != "" {
		full = append(full, "-s", g.serial)
	}
	return append(full, args...)
}

// Execute runs adb against the selected device.
func (g *ADBGateway) Execute(ctx context.Context, args ...string) string {
	return g.exec(ctx, g.timeout, g.Args(args...))
}

// ExecuteTimeout runs adb against the selected device with a custom deadline.
func (g *ADBGateway) ExecuteTimeout(ctx context.Context, timeout time.Duration, args ...string) string {
	return g.exec(ctx, timeout, g.Args(args...))
}

// ExecuteGlobal runs adb without a device selector.
func (g *ADBGateway) ExecuteGlobal(ctx context.Context, args ...string) string {
	return g.exec(ctx, g.timeout, args)
}

// Simulate reports whether the gateway only prints commands.
func (g *ADBGateway) Simulate() bool {
	return g.mode == ExecModeSimulate
}

func (g *ADBGateway) exec(ctx context.Context, timeout time.Duration, args []string) string {
	if g.Simulate() {
		fmt.Fprintf(g.out, "[dry-run] %s %s\n", g.adbPath, strings.Join(args, " "))
		return ""
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	out, err := g.run(ctx, g.adbPath, args...)
	if err != nil {
		// Failures are "no data", never fatal
		g.logger.Debug("adb command failed",
			zap.Strings("args", args),
			zap.Error(err))
		return ""
	}
	return strings.TrimSpace(string(out))
}

// Ensure ADBGateway implements domain.CommandGateway.
var _ domain.CommandGateway = (*ADBGateway)(nil)
