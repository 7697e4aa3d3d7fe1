package infra

import (
	"context"
	"strings"

	"github.com/shirou/gopsutil/v3/process"
	"go.uber.org/zap"

	"github.com/eliteGoblin/adloop/internal/domain"
)

// adbProcessNames are the local server process names on Unix and Windows.
var adbProcessNames = []string{"adb", "adb.exe"}

// ProcessLister returns the names of running processes.
type ProcessLister func() ([]string, error)

// GopsutilLister lists process names using gopsutil.
func GopsutilLister() ([]string, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(procs))
	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			continue // Process may have exited
		}
		names = append(names, name)
	}
	return names, nil
}

// ADBServerManager implements domain.ServerManager.
type ADBServerManager struct {
	gw     domain.CommandGateway
	list   ProcessLister
	logger *zap.Logger
}

// NewADBServerManager creates a server manager backed by gopsutil.
func NewADBServerManager(gw domain.CommandGateway, logger *zap.Logger) *ADBServerManager {
	return &ADBServerManager{gw: gw, list: GopsutilLister, logger: logger}
}

// NewADBServerManagerWithLister creates a server manager with a custom lister (for testing).
func NewADBServerManagerWithLister(gw domain.CommandGateway, list ProcessLister, logger *zap.Logger) *ADBServerManager {
	return &ADBServerManager{gw: gw, list: list, logger: logger}
}

// IsRunning checks if an adb server process exists (case-insensitive).
func (m *ADBServerManager) IsRunning() bool {
	names, err := m.list()
	if err != nil {
		m.logger.Debug("failed to list processes", zap.Error(err))
		return false
	}
	for _, name := range names {
		for _, want := range adbProcessNames {
			if strings.EqualFold(name, want) {
				return true
			}
		}
	}
	return false
}

// EnsureRunning issues `adb start-server` when no server process is found.
// Simulate mode never starts anything.
func (m *ADBServerManager) EnsureRunning(ctx context.Context) (bool, error) {
	if m.gw.Simulate() {
		return false, nil
	}
	if m.IsRunning() {
		return false, nil
	}

	m.logger.Info("adb server not running, starting...")
	m.gw.ExecuteGlobal(ctx, "start-server")
	return true, nil
}

// Ensure ADBServerManager implements domain.ServerManager.
var _ domain.ServerManager = (*ADBServerManager)(nil)
