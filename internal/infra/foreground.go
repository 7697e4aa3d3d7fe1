package infra

import (
	"context"
	"regexp"
	"strings"

	"github.com/eliteGoblin/adloop/internal/domain"
)

// SystemUIPackage is the system shell; it never counts as the foreground app.
const SystemUIPackage = "com.android.systemui"

// focusMarkers identify lines naming the focused or resumed component.
var focusMarkers = []string{"mResumedActivity", "mCurrentFocus", "mFocusedApp"}

// componentPattern captures the dotted token right before "/" or end of line.
var componentPattern = regexp.MustCompile(`([\w.]+)(?:/|$)`)

// ForegroundInspectorImpl implements domain.ForegroundInspector over dump sources.
type ForegroundInspectorImpl struct {
	sources []domain.DumpSource
}

// NewForegroundInspector queries the sources in the given order.
func NewForegroundInspector(sources ...domain.DumpSource) *ForegroundInspectorImpl {
	return &ForegroundInspectorImpl{sources: sources}
}

// Current returns the first foreground package found across all sources.
func (fi *ForegroundInspectorImpl) Current(ctx context.Context) string {
	for _, src := range fi.sources {
		if pkg := ParseForeground(src.Lines(ctx)); pkg != "" {
			return pkg
		}
	}
	return ""
}

// ParseForeground scans dump lines for a focus marker and extracts the
// component's package. System UI and unfocused ("null") entries are skipped,
// so a device with no focused window reads as unknown ("") and not as foreign.
func ParseForeground(lines []string) string {
	for _, line := range lines {
		if !hasFocusMarker(line) {
			continue
		}
		m := componentPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		pkg := m[1]
		if pkg == "" || pkg == SystemUIPackage || pkg == "null" {
			continue
		}
		return pkg
	}
	return ""
}

func hasFocusMarker(line string) bool {
	for _, marker := range focusMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

// Ensure ForegroundInspectorImpl implements domain.ForegroundInspector.
var _ domain.ForegroundInspector = (*ForegroundInspectorImpl)(nil)
