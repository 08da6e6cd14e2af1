package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/holomesh/config"
	"github.com/pthm-cable/holomesh/loop"
	"github.com/pthm-cable/holomesh/surface"
)

// Window owns the raylib window and its canvas.
type Window struct {
	canvas        *Canvas
	width, height int
}

// Open creates the window described by cfg.Screen. Must be called from the
// main OS thread.
func Open(cfg *config.Config) *Window {
	if cfg.Screen.Resizable {
		rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	} else {
		rl.SetConfigFlags(rl.FlagMsaa4xHint)
	}
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	return &Window{
		canvas: NewCanvas(cfg.Screen.Background),
		width:  rl.GetScreenWidth(),
		height: rl.GetScreenHeight(),
	}
}

// Surface returns the window's canvas, or absent if the window failed to open.
func (w *Window) Surface() surface.Optional {
	if !rl.IsWindowReady() {
		return surface.Absent()
	}
	return surface.Present(w.canvas)
}

// PollResize reports the window's inner size and whether it changed since
// the last poll.
func (w *Window) PollResize() (int, int, bool) {
	if !rl.IsWindowResized() {
		return w.width, w.height, false
	}
	width, height := rl.GetScreenWidth(), rl.GetScreenHeight()
	if width == w.width && height == w.height {
		return width, height, false
	}
	w.width, w.height = width, height
	return width, height, true
}

// Clock returns a frame clock paced by EndDrawing that is done when the user
// closes the window.
func (w *Window) Clock() loop.FrameClock {
	return loop.NewReadyClock(rl.WindowShouldClose)
}

// Close releases the canvas and closes the window.
func (w *Window) Close() {
	w.canvas.Unload()
	if rl.IsWindowReady() {
		rl.CloseWindow()
	}
}
