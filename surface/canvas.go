// Package surface defines the drawing surface the mesh renders into and the
// viewport that sizes it.
package surface

import "github.com/pthm-cable/holomesh/config"

// Paint is an RGB colour with a fractional alpha in [0, 1].
type Paint struct {
	R, G, B uint8
	A       float64
}

// PaintOf combines a configured colour with an alpha.
func PaintOf(rgb config.RGB, alpha float64) Paint {
	return Paint{R: rgb[0], G: rgb[1], B: rgb[2], A: alpha}
}

// Alpha8 returns the alpha scaled to 0..255, clamped.
func (p Paint) Alpha8() uint8 {
	a := p.A
	if a <= 0 {
		return 0
	}
	if a >= 1 {
		return 255
	}
	return uint8(a*255 + 0.5)
}

// RadialGradient fills a rectangle with a two-circle radial gradient from
// Inner at the inner circle to Outer at the outer circle.
type RadialGradient struct {
	// Rectangle to fill
	X, Y, W, H float64

	InnerX, InnerY, InnerR float64
	OuterX, OuterY, OuterR float64

	Inner, Outer Paint
}

// Canvas is the set of drawing primitives the mesh needs from its host.
// Coordinates are surface pixels.
type Canvas interface {
	// Size returns the surface dimensions in pixels.
	Size() (w, h int)
	// Clear erases the whole surface.
	Clear()
	// FillCircle paints a filled circle.
	FillCircle(x, y, r float64, p Paint)
	// FillRadialGradient paints a rectangle with a radial gradient.
	FillRadialGradient(g RadialGradient)
	// StrokeLine draws a straight line.
	StrokeLine(x0, y0, x1, y1, width float64, p Paint)
}

// Optional is a rendering capability that may be absent. The zero value is absent.
type Optional struct {
	canvas Canvas
}

// Present wraps an available canvas. A nil canvas is treated as absent.
func Present(c Canvas) Optional {
	return Optional{canvas: c}
}

// Absent returns the missing-capability variant.
func Absent() Optional {
	return Optional{}
}

// Get returns the canvas and whether it is available.
func (o Optional) Get() (Canvas, bool) {
	return o.canvas, o.canvas != nil
}

// Available reports whether a canvas is present.
func (o Optional) Available() bool {
	return o.canvas != nil
}

// Framer is implemented by canvases that bracket each frame, such as a
// window that must begin drawing before the first primitive and present the
// result after the last.
type Framer interface {
	BeginFrame()
	EndFrame()
}
