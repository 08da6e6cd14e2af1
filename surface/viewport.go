package surface

// Viewport tracks the surface's pixel dimensions. It is the only writer of
// those dimensions; everything else reads Size for the current tick.
type Viewport struct {
	w, h    int
	resizes int
}

// NewViewport creates a viewport with the initial inner window size.
func NewViewport(w, h int) *Viewport {
	v := &Viewport{}
	v.w, v.h = clampDim(w), clampDim(h)
	return v
}

// Resize applies a resize notification. Negative sizes clamp to zero.
// Returns true if the dimensions changed.
func (v *Viewport) Resize(w, h int) bool {
	w, h = clampDim(w), clampDim(h)
	if w == v.w && h == v.h {
		return false
	}
	v.w, v.h = w, h
	v.resizes++
	return true
}

// Size returns the current width and height.
func (v *Viewport) Size() (w, h int) {
	return v.w, v.h
}

// Area returns width*height in px².
func (v *Viewport) Area() float64 {
	return float64(v.w) * float64(v.h)
}

// Resizes returns how many resizes changed the dimensions.
func (v *Viewport) Resizes() int {
	return v.resizes
}

func clampDim(d int) int {
	if d < 0 {
		return 0
	}
	return d
}
