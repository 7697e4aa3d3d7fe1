package daemon

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// BannerInfo is what the operator sees before the loop starts.
type BannerInfo struct {
	Version string
	RunID   string
	Device  string
	Game    string
	Package string
	Button  string
	Mode    string
	Tactics []string
}

// PrintBanner writes the startup banner.
func PrintBanner(out io.Writer, info BannerInfo) {
	title := color.New(color.FgGreen, color.Bold)
	label := color.New(color.FgYellow)

	title.Fprintf(out, "=== adloop %s ===\n", info.Version)
	row := func(name, value string) {
		label.Fprintf(out, "%-9s", name+":")
		fmt.Fprintf(out, " %s\n", value)
	}
	row("Run", info.RunID)
	row("Device", info.Device)
	row("Game", fmt.Sprintf("%s (%s)", info.Game, info.Package))
	row("Button", info.Button)
	row("Mode", info.Mode)
	row("Ladder", strings.Join(info.Tactics, " -> "))
	title.Fprintln(out, strings.Repeat("=", 20))
}
