// Package renderer draws the mesh into a raylib window.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/holomesh/config"
	"github.com/pthm-cable/holomesh/surface"
)

// Canvas implements surface.Canvas and surface.Framer on the raylib window.
type Canvas struct {
	background rl.Color
	backdrop   *BackdropRenderer
}

// NewCanvas creates a canvas that clears to background.
func NewCanvas(background config.RGB) *Canvas {
	return &Canvas{
		background: rl.Color{R: background[0], G: background[1], B: background[2], A: 255},
		backdrop:   NewBackdropRenderer(),
	}
}

// Size implements surface.Canvas.
func (c *Canvas) Size() (int, int) {
	return rl.GetScreenWidth(), rl.GetScreenHeight()
}

// BeginFrame implements surface.Framer.
func (c *Canvas) BeginFrame() {
	rl.BeginDrawing()
}

// EndFrame implements surface.Framer. It presents the frame and waits for
// the target FPS.
func (c *Canvas) EndFrame() {
	rl.EndDrawing()
}

// Clear implements surface.Canvas.
func (c *Canvas) Clear() {
	rl.ClearBackground(c.background)
}

// FillCircle implements surface.Canvas.
func (c *Canvas) FillCircle(x, y, r float64, p surface.Paint) {
	rl.DrawCircleV(rl.Vector2{X: float32(x), Y: float32(y)}, float32(r), toColor(p))
}

// FillRadialGradient implements surface.Canvas.
func (c *Canvas) FillRadialGradient(g surface.RadialGradient) {
	c.backdrop.Draw(g, rl.GetRenderHeight())
}

// StrokeLine implements surface.Canvas.
func (c *Canvas) StrokeLine(x0, y0, x1, y1, width float64, p surface.Paint) {
	rl.DrawLineEx(
		rl.Vector2{X: float32(x0), Y: float32(y0)},
		rl.Vector2{X: float32(x1), Y: float32(y1)},
		float32(width),
		toColor(p),
	)
}

// Unload frees GPU resources.
func (c *Canvas) Unload() {
	c.backdrop.Unload()
}

func toColor(p surface.Paint) rl.Color {
	return rl.Color{R: p.R, G: p.G, B: p.B, A: p.Alpha8()}
}
