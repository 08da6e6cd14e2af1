package surface

// CircleOp is a recorded FillCircle call.
type CircleOp struct {
	X, Y, R float64
	Paint   Paint
}

// LineOp is a recorded StrokeLine call.
type LineOp struct {
	X0, Y0, X1, Y1 float64
	Width          float64
	Paint          Paint
}

// Recorder is a Canvas that keeps the operations of the current frame in
// memory. Headless runs draw into it and tests inspect it.
type Recorder struct {
	W, H int

	// KeepOps retains individual operations; when false only counts are kept.
	KeepOps bool

	Clears    int
	Circles   []CircleOp
	Lines     []LineOp
	Gradients []RadialGradient

	CircleCount int
	LineCount   int

	// Frames counts completed BeginFrame/EndFrame pairs.
	Frames int
}

// NewRecorder creates a recorder with the given surface size.
func NewRecorder(w, h int, keepOps bool) *Recorder {
	return &Recorder{W: w, H: h, KeepOps: keepOps}
}

// Size implements Canvas.
func (r *Recorder) Size() (int, int) {
	return r.W, r.H
}

// Clear implements Canvas. It starts a new frame: previous operations are dropped.
func (r *Recorder) Clear() {
	r.Clears++
	r.Circles = r.Circles[:0]
	r.Lines = r.Lines[:0]
	r.Gradients = r.Gradients[:0]
	r.CircleCount = 0
	r.LineCount = 0
}

// FillCircle implements Canvas.
func (r *Recorder) FillCircle(x, y, radius float64, p Paint) {
	r.CircleCount++
	if r.KeepOps {
		r.Circles = append(r.Circles, CircleOp{X: x, Y: y, R: radius, Paint: p})
	}
}

// FillRadialGradient implements Canvas.
func (r *Recorder) FillRadialGradient(g RadialGradient) {
	if r.KeepOps {
		r.Gradients = append(r.Gradients, g)
	}
}

// StrokeLine implements Canvas.
func (r *Recorder) StrokeLine(x0, y0, x1, y1, width float64, p Paint) {
	r.LineCount++
	if r.KeepOps {
		r.Lines = append(r.Lines, LineOp{X0: x0, Y0: y0, X1: x1, Y1: y1, Width: width, Paint: p})
	}
}

// BeginFrame implements Framer.
func (r *Recorder) BeginFrame() {}

// EndFrame implements Framer.
func (r *Recorder) EndFrame() {
	r.Frames++
}
