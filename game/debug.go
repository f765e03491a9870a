package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// DebugState holds global debug flags that persist across level restarts
type DebugState struct {
	ShowGrid bool // Show collision cells and entity bounds
}

// Global debug state instance (persists across level restarts)
var globalDebugState = &DebugState{}

// GetDebugState returns the global debug state
func GetDebugState() *DebugState {
	return globalDebugState
}

// updateDebugKeys handles debug key presses: F1 toggles the grid, F2 captures a profile
func (g *Game) updateDebugKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		globalDebugState.ShowGrid = !globalDebugState.ShowGrid
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		if err := g.profiler.Capture("manual"); err != nil {
			g.log.Warn().Err(err).Msg("profile capture")
		}
	}
}
