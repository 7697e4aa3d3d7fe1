package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const testGame = "com.balloon.master.cube.match"

func TestButtonMode_Next(t *testing.T) {
	assert.Equal(t, ButtonRetry, ButtonHome.Next())
	assert.Equal(t, ButtonHome, ButtonRetry.Next())
}

func TestNewCycleState_DefaultsToHome(t *testing.T) {
	s := NewCycleState("")
	assert.Equal(t, ButtonHome, s.Mode)
	assert.False(t, s.NeedsLevelTap)
	assert.Zero(t, s.StickyCount)
}

func TestObserveForeground_IncrementsOnRepeat(t *testing.T) {
	s := NewCycleState(ButtonHome)

	assert.False(t, s.ObserveForeground("com.android.chrome", testGame))
	assert.Equal(t, "com.android.chrome", s.LastForeign)
	assert.Equal(t, 0, s.StickyCount)

	assert.True(t, s.ObserveForeground("com.android.chrome", testGame))
	assert.True(t, s.ObserveForeground("com.android.chrome", testGame))
	assert.Equal(t, 2, s.StickyCount)
}

func TestObserveForeground_ResetsOnChange(t *testing.T) {
	tests := []struct {
		name string
		next string
	}{
		{"different ad", "com.applovin.sdk"},
		{"empty", ""},
		{"game", testGame},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewCycleState(ButtonHome)
			s.ObserveForeground("com.android.chrome", testGame)
			s.ObserveForeground("com.android.chrome", testGame)
			assert.Equal(t, 1, s.StickyCount)

			assert.False(t, s.ObserveForeground(tt.next, testGame))
			assert.Equal(t, 0, s.StickyCount)
			assert.Equal(t, tt.next, s.LastForeign)
		})
	}
}

func TestObserveForeground_NeverCountsEmptyOrGame(t *testing.T) {
	s := NewCycleState(ButtonHome)
	for i := 0; i < 3; i++ {
		s.ObserveForeground("", testGame)
	}
	assert.Equal(t, 0, s.StickyCount)

	for i := 0; i < 3; i++ {
		s.ObserveForeground(testGame, testGame)
	}
	assert.Equal(t, 0, s.StickyCount)
}

func TestComplete_AlternatesMode(t *testing.T) {
	s := NewCycleState(ButtonHome)

	s.Complete()
	assert.Equal(t, 1, s.Cycle)
	assert.Equal(t, ButtonRetry, s.Mode)

	s.Complete()
	assert.Equal(t, 2, s.Cycle)
	assert.Equal(t, ButtonHome, s.Mode)
}

func TestClearSticky(t *testing.T) {
	s := &CycleState{StickyCount: 4, LastForeign: "x.y"}
	s.ClearSticky()
	assert.Zero(t, s.StickyCount)
	assert.Equal(t, "x.y", s.LastForeign)
}
