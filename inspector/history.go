package inspector

import "gonum.org/v1/gonum/floats"

// History is a fixed-size ring buffer of samples, read oldest first.
type History struct {
	values []float64
	next   int
	count  int
}

// NewHistory creates a history holding up to size samples.
func NewHistory(size int) *History {
	if size < 2 {
		size = 2
	}
	return &History{values: make([]float64, size)}
}

// Push records a sample, evicting the oldest when full.
func (h *History) Push(v float64) {
	h.values[h.next] = v
	h.next = (h.next + 1) % len(h.values)
	if h.count < len(h.values) {
		h.count++
	}
}

// Len returns the number of stored samples.
func (h *History) Len() int {
	return h.count
}

// At returns the i-th stored sample, 0 being the oldest.
func (h *History) At(i int) float64 {
	return h.values[(h.next-h.count+i+len(h.values))%len(h.values)]
}

// Values copies the stored samples, oldest first.
func (h *History) Values() []float64 {
	out := make([]float64, h.count)
	for i := range out {
		out[i] = h.At(i)
	}
	return out
}

// Last returns the newest sample, or 0 when empty.
func (h *History) Last() float64 {
	if h.count == 0 {
		return 0
	}
	return h.At(h.count - 1)
}

// Range returns the padded min/max of the stored samples for plotting.
// Empty or flat histories map to [0, 1] around their value.
func (h *History) Range() (lo, hi float64) {
	if h.count == 0 {
		return 0, 1
	}
	values := h.Values()
	lo, hi = floats.Min(values), floats.Max(values)
	if lo >= hi {
		return lo - 0.5, hi + 0.5
	}
	// 10% padding
	pad := (hi - lo) * 0.1
	return lo - pad, hi + pad
}
