package infra

import (
	"context"
	"strconv"

	"github.com/eliteGoblin/adloop/internal/domain"
)

// launcherCategory scopes a monkey launch to the app's launcher activity.
const launcherCategory = "android.intent.category.LAUNCHER"

// ADBDevice implements domain.DeviceController with adb shell commands.
type ADBDevice struct {
	gw domain.CommandGateway
}

// NewADBDevice creates a device controller on top of a gateway.
func NewADBDevice(gw domain.CommandGateway) *ADBDevice {
	return &ADBDevice{gw: gw}
}

// Tap sends `input tap x y`.
func (d *ADBDevice) Tap(ctx context.Context, p domain.Point) {
	d.gw.Execute(ctx, "shell", "input", "tap", strconv.Itoa(p.X), strconv.Itoa(p.Y))
}

// PressKey sends `input keyevent <code>`.
func (d *ADBDevice) PressKey(ctx context.Context, keycode string) {
	d.gw.Execute(ctx, "shell", "input", "keyevent", keycode)
}

// ForceStop sends `am force-stop <pkg>`.
func (d *ADBDevice) ForceStop(ctx context.Context, pkg string) {
	d.gw.Execute(ctx, "shell", "am", "force-stop", pkg)
}

// Launch sends a generic `monkey -p <pkg> 1`.
func (d *ADBDevice) Launch(ctx context.Context, pkg string) {
	d.gw.Execute(ctx, "shell", "monkey", "-p", pkg, "1")
}

// LaunchFromLauncher relaunches without force-stopping, via the launcher intent.
func (d *ADBDevice) LaunchFromLauncher(ctx context.Context, pkg string) {
	d.gw.Execute(ctx, "shell", "monkey", "-p", pkg, "-c", launcherCategory, "1")
}

// Ensure ADBDevice implements domain.DeviceController.
var _ domain.DeviceController = (*ADBDevice)(nil)
