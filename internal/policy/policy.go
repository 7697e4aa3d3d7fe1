// Package policy implements the Strategy pattern for game-specific automation rules.
// Each game has its own profile defining package name and tap layout.
package policy

import (
	"github.com/eliteGoblin/adloop/internal/domain"
)

// GameProfile defines the strategy interface for automating one game.
type GameProfile interface {
	// ID returns unique identifier (e.g., "balloon-master-3d").
	ID() string

	// Name returns human-readable name for display.
	Name() string

	// Package returns the Android application package.
	Package() string

	// Layout returns the tap targets for the supported screen size.
	Layout() domain.GameLayout
}

// ToGame converts a GameProfile to a domain.Game entity.
func ToGame(gp GameProfile) domain.Game {
	return domain.Game{
		ID:      gp.ID(),
		Name:    gp.Name(),
		Package: gp.Package(),
		Layout:  gp.Layout(),
	}
}
