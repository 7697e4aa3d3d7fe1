// Package fixtures provides test helpers for integration tests.
package fixtures

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/eliteGoblin/adloop/internal/domain"
)

// Components the fake device can put in front.
const (
	LauncherComponent = "com.android.launcher3/com.android.launcher3.uioverride.QuickstepLauncher"
	RecentsComponent  = "com.android.systemui/com.android.systemui.recents.RecentsActivity"
	GameActivity      = "com.unity3d.player.UnityPlayerActivity"
)

// AdKind says what it takes to get rid of a fake ad.
type AdKind int

const (
	// NoAd means the trigger shows nothing.
	NoAd AdKind = iota
	// CloseTapAd goes away on a tap near any close button.
	CloseTapAd
	// BackKeyAd goes away on BACK.
	BackKeyAd
	// StickyAd keeps focus through taps and keys; only a force-stop of the
	// game or of its host clears it.
	StickyAd
	// HostedAd is a StickyAd running in another app, such as a browser tab.
	// It survives a game restart; only force-stopping its host clears it.
	HostedAd
)

// Ad is one scripted ad.
type Ad struct {
	Kind      AdKind
	Component string // "package/activity" the ad runs as
}

// Ad components seen in the wild.
var (
	AppLovinInterstitial = "com.applovin.sdk/com.applovin.adview.AppLovinFullscreenActivity"
	ChromeCustomTab      = "com.android.chrome/org.chromium.chrome.browser.customtabs.CustomTabActivity"
)

// FakeDevice emulates the adb commands the loop issues against one device.
// Its Run method has the shape of an infra.CommandRunner.
type FakeDevice struct {
	mu sync.Mutex

	serial     string
	game       domain.Game
	tolerance  int
	foreground string
	running    bool
	ad         *Ad
	queue      []Ad
	triggers   []string
	commands   []string
	failDumps  bool
}

// NewFakeDevice creates a fake with the launcher in front and the game stopped.
// Each home or retry tap made from the game pops the next scripted ad.
func NewFakeDevice(serial string, game domain.Game, ads ...Ad) *FakeDevice {
	return &FakeDevice{
		serial:     serial,
		game:       game,
		tolerance:  5,
		foreground: LauncherComponent,
		queue:      ads,
	}
}

// GameComponent is the game's main activity.
func (f *FakeDevice) GameComponent() string {
	return f.game.Package + "/" + GameActivity
}

// ShowGame puts the running game in front.
func (f *FakeDevice) ShowGame() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.running = true
	f.ad = nil
	f.foreground = f.GameComponent()
}

// SetForeground forces the component in front.
func (f *FakeDevice) SetForeground(component string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.foreground = component
}

// FailDumps makes every dumpsys call fail.
func (f *FakeDevice) FailDumps(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failDumps = fail
}

// Foreground returns the component in front.
func (f *FakeDevice) Foreground() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.foreground
}

// Triggers returns the trigger buttons tapped, "home" or "retry", in order.
func (f *FakeDevice) Triggers() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.triggers...)
}

// Commands returns every command received, without the adb path and serial.
func (f *FakeDevice) Commands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.commands...)
}

// Count returns how many commands contain substr.
func (f *FakeDevice) Count(substr string) int {
	n := 0
	for _, c := range f.Commands() {
		if strings.Contains(c, substr) {
			n++
		}
	}
	return n
}

// Run handles one adb invocation.
func (f *FakeDevice) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(args) >= 2 && args[0] == "-s" {
		if args[1] != f.serial {
			return nil, fmt.Errorf("error: device '%s' not found", args[1])
		}
		args = args[2:]
	}
	f.commands = append(f.commands, strings.Join(args, " "))

	if len(args) == 0 {
		return nil, fmt.Errorf("adb: no command")
	}
	if args[0] == "start-server" {
		return nil, nil
	}
	if args[0] != "shell" || len(args) < 2 {
		return nil, fmt.Errorf("adb: unsupported command %q", strings.Join(args, " "))
	}

	shell := args[1:]
	switch {
	case len(shell) == 4 && shell[0] == "input" && shell[1] == "tap":
		x, errX := strconv.Atoi(shell[2])
		y, errY := strconv.Atoi(shell[3])
		if errX != nil || errY != nil {
			return nil, fmt.Errorf("input: bad coordinates")
		}
		f.tap(domain.Point{X: x, Y: y})
	case len(shell) == 3 && shell[0] == "input" && shell[1] == "keyevent":
		f.key(shell[2])
	case len(shell) == 3 && shell[0] == "am" && shell[1] == "force-stop":
		f.forceStop(shell[2])
	case len(shell) >= 3 && shell[0] == "monkey" && shell[1] == "-p":
		f.launch(shell[2])
	case len(shell) >= 2 && shell[0] == "dumpsys":
		if f.failDumps {
			return nil, fmt.Errorf("dumpsys: timed out")
		}
		return []byte(f.dump(shell[1])), nil
	default:
		return nil, fmt.Errorf("adb: unsupported shell command %q", strings.Join(shell, " "))
	}
	return nil, nil
}

func (f *FakeDevice) near(p, target domain.Point) bool {
	dx, dy := p.X-target.X, p.Y-target.Y
	return dx >= -f.tolerance && dx <= f.tolerance && dy >= -f.tolerance && dy <= f.tolerance
}

func (f *FakeDevice) adVisible() bool {
	return f.ad != nil && f.foreground == f.ad.Component
}

func (f *FakeDevice) tap(p domain.Point) {
	l := f.game.Layout
	switch {
	case f.foreground == f.GameComponent():
		button := ""
		if f.near(p, l.HomeButton) {
			button = string(domain.ButtonHome)
		} else if f.near(p, l.RetryButton) {
			button = string(domain.ButtonRetry)
		}
		if button == "" {
			return
		}
		f.triggers = append(f.triggers, button)
		if len(f.queue) == 0 {
			return
		}
		next := f.queue[0]
		f.queue = f.queue[1:]
		if next.Kind != NoAd {
			f.ad = &next
			f.foreground = next.Component
		}
	case f.foreground == RecentsComponent:
		f.resume()
	case f.adVisible() && f.ad.Kind == CloseTapAd:
		for _, c := range l.CloseButtons {
			if f.near(p, c) {
				f.ad = nil
				f.foreground = f.GameComponent()
				return
			}
		}
	}
}

func (f *FakeDevice) key(code string) {
	if f.adVisible() && (f.ad.Kind == StickyAd || f.ad.Kind == HostedAd) {
		return
	}
	switch code {
	case domain.KeyBack:
		if f.adVisible() && f.ad.Kind == BackKeyAd {
			f.ad = nil
			f.foreground = f.GameComponent()
		}
	case domain.KeyHome:
		f.foreground = LauncherComponent
	case domain.KeyAppSwitch:
		f.foreground = RecentsComponent
	}
}

// resume brings back whatever the game was showing.
func (f *FakeDevice) resume() {
	switch {
	case !f.running:
		f.foreground = LauncherComponent
	case f.ad != nil:
		f.foreground = f.ad.Component
	default:
		f.foreground = f.GameComponent()
	}
}

func (f *FakeDevice) forceStop(pkg string) {
	if pkg == f.game.Package {
		f.running = false
		if f.ad != nil && f.ad.Kind != HostedAd {
			f.ad = nil
		}
		f.foreground = LauncherComponent
		return
	}
	if f.ad != nil && componentPackage(f.ad.Component) == pkg {
		f.ad = nil
		f.resume()
		return
	}
	if componentPackage(f.foreground) == pkg {
		f.foreground = LauncherComponent
	}
}

func (f *FakeDevice) launch(pkg string) {
	if pkg != f.game.Package {
		return
	}
	f.running = true
	f.resume()
}

func (f *FakeDevice) dump(service string) string {
	var b strings.Builder
	switch service {
	case "window":
		b.WriteString("WINDOW MANAGER WINDOWS (dumpsys window windows)\n")
		b.WriteString("  Window #0 Window{3e9 u0 com.android.systemui/StatusBar}:\n")
		fmt.Fprintf(&b, "  mCurrentFocus=Window{8f1c2 u0 %s}\n", f.foreground)
		fmt.Fprintf(&b, "  mFocusedApp=ActivityRecord{77ab u0 %s t51}\n", f.foreground)
	case "activity":
		b.WriteString("ACTIVITY MANAGER ACTIVITIES (dumpsys activity activities)\n")
		fmt.Fprintf(&b, "    mResumedActivity: ActivityRecord{77ab u0 %s t51}\n", f.foreground)
	}
	return b.String()
}

func componentPackage(component string) string {
	if i := strings.Index(component, "/"); i >= 0 {
		return component[:i]
	}
	return component
}
