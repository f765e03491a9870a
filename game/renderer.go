package game

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"gravityshot/level"
	"gravityshot/view"
	"gravityshot/world"
)

var (
	colorPlanet   = color.RGBA{90, 120, 200, 255}
	colorGoal     = color.RGBA{80, 220, 120, 255}
	colorPlayer   = color.RGBA{255, 210, 60, 255}
	colorPreview  = color.NRGBA{255, 255, 255, 220}
	colorBounds   = color.RGBA{60, 60, 90, 255}
	colorGrid     = color.RGBA{40, 40, 70, 255}
	colorHUD      = color.RGBA{220, 220, 220, 255}
	colorChargeBg = color.RGBA{60, 60, 60, 255}
	colorCharge   = color.RGBA{255, 140, 40, 255}
)

var hudFace = text.NewGoXFace(basicfont.Face7x13)

// HUD is the per-frame status shown over the world
type HUD struct {
	Shots    int
	Charge   float64
	Charging bool
	Phase    level.Phase
	Outcome  level.Outcome
	Paused   bool
	FPS      float64
}

// Renderer draws the world, the launch preview and the HUD. It is also the
// launcher's path display and position indicator.
type Renderer struct {
	camera *view.Camera

	path     []mgl64.Vec3
	position mgl64.Vec3
}

// NewRenderer creates a new renderer
func NewRenderer(camera *view.Camera) *Renderer {
	return &Renderer{
		camera: camera,
	}
}

// ShowPath replaces the displayed preview. An empty path hides it.
func (r *Renderer) ShowPath(path []mgl64.Vec3) {
	r.path = append(r.path[:0], path...)
}

// ShowPosition moves the player marker
func (r *Renderer) ShowPosition(pos mgl64.Vec3) {
	r.position = pos
}

// Render draws one frame
func (r *Renderer) Render(screen *ebiten.Image, w *world.World, hud HUD) {
	if GetDebugState().ShowGrid {
		r.renderGrid(screen, w.Settings())
	}
	r.renderBounds(screen, w.Settings())

	for _, e := range w.Entities() {
		if e.Destroyed() {
			continue
		}
		r.RenderEntity(screen, e)
	}

	r.renderPreview(screen)
	r.renderHUD(screen, hud)
}

// RenderEntity renders a single entity
func (r *Renderer) RenderEntity(screen *ebiten.Image, e *world.Entity) {
	pos := e.Position()
	var clr color.Color
	switch e.Kind {
	case world.KindPlanet:
		clr = colorPlanet
	case world.KindGoal:
		clr = colorGoal
	case world.KindPlayer:
		clr = colorPlayer
		pos = r.position
	default:
		clr = colorHUD
	}

	sx, sy := r.camera.WorldToScreen(pos.X(), pos.Y())
	radius := e.Radius * r.camera.Zoom
	if radius < 1 {
		radius = 1
	}

	if e.Kind == world.KindGoal {
		vector.StrokeCircle(screen, float32(sx), float32(sy), float32(radius), 2, clr, true)
		return
	}
	vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(radius), clr, true)

	if GetDebugState().ShowGrid {
		vector.StrokeRect(screen, float32(sx-radius), float32(sy-radius), float32(2*radius), float32(2*radius), 1, colorGrid, false)
	}
}

// renderPreview draws the predicted path as fading dashes
func (r *Renderer) renderPreview(screen *ebiten.Image) {
	if len(r.path) < 2 {
		return
	}

	for i := 0; i+1 < len(r.path); i += 2 {
		x1, y1 := r.camera.WorldToScreen(r.path[i].X(), r.path[i].Y())
		x2, y2 := r.camera.WorldToScreen(r.path[i+1].X(), r.path[i+1].Y())

		// Fade from full to 0.2 along the path
		progress := float64(i) / float64(len(r.path)-1)
		opacity := 1.0 - progress*0.8
		faded := colorPreview
		faded.A = uint8(float64(colorPreview.A) * opacity)

		vector.StrokeLine(screen, float32(x1), float32(y1), float32(x2), float32(y2), 2, faded, true)
	}
}

func (r *Renderer) renderBounds(screen *ebiten.Image, s world.Settings) {
	x0, y0 := r.camera.WorldToScreen(0, 0)
	x1, y1 := r.camera.WorldToScreen(s.Width, s.Height)
	vector.StrokeRect(screen, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0), 1, colorBounds, false)
}

// renderGrid draws the collision partition cells
func (r *Renderer) renderGrid(screen *ebiten.Image, s world.Settings) {
	if s.CellSize*r.camera.Zoom < 4 {
		return
	}
	for x := 0.0; x <= s.Width; x += s.CellSize {
		sx, sy0 := r.camera.WorldToScreen(x, 0)
		_, sy1 := r.camera.WorldToScreen(x, s.Height)
		vector.StrokeLine(screen, float32(sx), float32(sy0), float32(sx), float32(sy1), 1, colorGrid, false)
	}
	for y := 0.0; y <= s.Height; y += s.CellSize {
		sx0, sy := r.camera.WorldToScreen(0, y)
		sx1, _ := r.camera.WorldToScreen(s.Width, y)
		vector.StrokeLine(screen, float32(sx0), float32(sy), float32(sx1), float32(sy), 1, colorGrid, false)
	}
}

func (r *Renderer) renderHUD(screen *ebiten.Image, hud HUD) {
	drawText(screen, fmt.Sprintf("Shots: %d", hud.Shots), 10, 10)
	drawText(screen, fmt.Sprintf("FPS: %.0f", hud.FPS), int(r.camera.Width)-80, 10)

	if hud.Charging {
		const barW, barH = 120.0, 8.0
		vector.DrawFilledRect(screen, 10, 30, barW, barH, colorChargeBg, false)
		vector.DrawFilledRect(screen, 10, 30, float32(barW*hud.Charge), barH, colorCharge, false)
	}

	var status string
	switch {
	case hud.Paused:
		status = "PAUSED - press P to resume"
	case hud.Phase == level.Stopped && hud.Outcome == level.Success:
		status = "GOAL!"
	case hud.Phase == level.Stopped && hud.Outcome == level.Crash:
		status = "Crashed"
	case hud.Phase == level.Stopped && hud.Outcome == level.Lost:
		status = "Lost in space"
	case hud.Phase == level.Stopped && hud.Outcome == level.TimedOut:
		status = "Out of time"
	case hud.Phase == level.Ready && !hud.Charging:
		status = "Hold to charge, release to launch"
	}
	if status != "" {
		x := int(r.camera.Width)/2 - len(status)*7/2
		drawText(screen, status, x, int(r.camera.Height)-30)
	}
}

func drawText(screen *ebiten.Image, s string, x, y int) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(colorHUD)
	text.Draw(screen, s, hudFace, op)
}
