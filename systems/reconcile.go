package systems

import "math"

// Drift returns |current - last| / max(1, last).
func Drift(current, last float64) float64 {
	return math.Abs(current-last) / math.Max(1, last)
}

// Reconciler decides when surface area has drifted far enough from the area
// of the last rebuild to warrant a new population.
type Reconciler struct {
	threshold float64
	baseline  float64
}

// NewReconciler creates a reconciler with the given relative drift threshold
// and starting baseline area.
func NewReconciler(threshold, baseline float64) *Reconciler {
	return &Reconciler{threshold: threshold, baseline: baseline}
}

// Check reports whether area drifted more than the threshold from the
// baseline. When it does, area becomes the new baseline.
func (r *Reconciler) Check(area float64) bool {
	if Drift(area, r.baseline) <= r.threshold {
		return false
	}
	r.baseline = area
	return true
}

// Baseline returns the area recorded at the last rebuild.
func (r *Reconciler) Baseline() float64 {
	return r.baseline
}

// Reset records area as the baseline without a drift check.
func (r *Reconciler) Reset(area float64) {
	r.baseline = area
}
