package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerInput tracks the primary pointer: the left mouse button or the
// first touch. Edge transitions are latched once per frame by Update.
type PointerInput struct {
	touches []ebiten.TouchID

	touchID  ebiten.TouchID
	touching bool

	x, y int

	pressed  bool
	released bool
}

// NewPointerInput creates a pointer input
func NewPointerInput() *PointerInput {
	return &PointerInput{
		touches: make([]ebiten.TouchID, 0, 4),
	}
}

// Update polls the pointer. Call it once per frame before the launcher reads it.
func (p *PointerInput) Update() {
	p.pressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	p.released = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	p.x, p.y = ebiten.CursorPosition()

	if !p.touching {
		p.touches = inpututil.AppendJustPressedTouchIDs(p.touches[:0])
		if len(p.touches) > 0 {
			p.touchID = p.touches[0]
			p.touching = true
			p.pressed = true
		}
	}
	if p.touching {
		if inpututil.IsTouchJustReleased(p.touchID) {
			p.touching = false
			p.released = true
			// Released touches report no position; keep the last one
			return
		}
		p.x, p.y = ebiten.TouchPosition(p.touchID)
	}
}

// JustPressed reports whether the pointer went down this frame
func (p *PointerInput) JustPressed() bool {
	return p.pressed
}

// JustReleased reports whether the pointer went up this frame
func (p *PointerInput) JustReleased() bool {
	return p.released
}

// Position returns the pointer position in screen pixels
func (p *PointerInput) Position() (int, int) {
	return p.x, p.y
}

// Overlay is the pause screen. While it is shown it swallows gameplay input
// and the simulation does not advance.
type Overlay struct {
	paused bool
}

// Update toggles the overlay on P or Escape
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		o.paused = !o.paused
	}
}

// Paused reports whether the overlay is shown
func (o *Overlay) Paused() bool {
	return o.paused
}
