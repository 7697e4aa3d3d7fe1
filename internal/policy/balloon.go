package policy

import (
	"github.com/eliteGoblin/adloop/internal/domain"
)

// BalloonMasterProfile implements GameProfile for Balloon Master 3D.
// Coordinates are for a 720x1600 screen.
type BalloonMasterProfile struct{}

// NewBalloonMasterProfile creates the Balloon Master 3D profile.
func NewBalloonMasterProfile() *BalloonMasterProfile {
	return &BalloonMasterProfile{}
}

func (p *BalloonMasterProfile) ID() string {
	return "balloon-master-3d"
}

func (p *BalloonMasterProfile) Name() string {
	return "Balloon Master 3D"
}

func (p *BalloonMasterProfile) Package() string {
	return "com.balloon.master.cube.match"
}

// Layout returns the in-game buttons and the known ad close-button spots.
func (p *BalloonMasterProfile) Layout() domain.GameLayout {
	return domain.GameLayout{
		LevelButton:    domain.Point{X: 300, Y: 1317},
		PauseButton:    domain.Point{X: 625, Y: 133},
		HomeButton:     domain.Point{X: 159, Y: 851},
		RetryButton:    domain.Point{X: 569, Y: 884},
		SwitcherCenter: domain.Point{X: 360, Y: 800},
		CloseButtons: []domain.Point{
			// Observed ad 'X' positions
			{X: 650, Y: 134},
			{X: 59, Y: 136},
			{X: 649, Y: 203},

			// Top-right, top-left, center-top
			{X: 690, Y: 80},
			{X: 60, Y: 80},
			{X: 360, Y: 60},
		},
	}
}

// Ensure BalloonMasterProfile implements GameProfile.
var _ GameProfile = (*BalloonMasterProfile)(nil)
