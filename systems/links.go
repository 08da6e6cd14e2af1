package systems

import (
	"slices"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/holomesh/config"
)

// Link is a line to draw between points I and J (I < J).
type Link struct {
	I, J  int
	Dist  float64
	Alpha float64
}

// LinkRules holds the proximity threshold and alpha falloff.
type LinkRules struct {
	Distance      float64 // Pairs at or beyond this distance are not linked
	MaxAlpha      float64 // Alpha at zero distance
	GridThreshold int     // Point counts above this use the grid (0 = never)
}

// LinkRulesFromConfig extracts link rules from the loaded config.
func LinkRulesFromConfig(cfg *config.Config) LinkRules {
	return LinkRules{
		Distance:      cfg.Links.Distance,
		MaxAlpha:      cfg.Links.MaxAlpha,
		GridThreshold: cfg.Links.GridThreshold,
	}
}

// Alpha returns the stroke alpha for two points dist apart:
// MaxAlpha at zero, falling linearly to zero at Distance.
func (r LinkRules) Alpha(dist float64) float64 {
	if dist >= r.Distance {
		return 0
	}
	return r.MaxAlpha * (1 - dist/r.Distance)
}

// LinkFinder enumerates linked pairs. It reuses its buffers between calls and
// is not safe for concurrent use.
type LinkFinder struct {
	rules     LinkRules
	grid      *PointGrid
	neighbors []int
}

// NewLinkFinder creates a finder for the given rules.
func NewLinkFinder(rules LinkRules) *LinkFinder {
	return &LinkFinder{
		rules: rules,
		grid:  NewPointGrid(rules.Distance),
	}
}

// Rules returns the finder's rules.
func (f *LinkFinder) Rules() LinkRules {
	return f.rules
}

// UsesGrid reports whether n points would be handled by the spatial grid.
func (f *LinkFinder) UsesGrid(n int) bool {
	return f.rules.GridThreshold > 0 && n > f.rules.GridThreshold
}

// Find calls emit for every pair closer than the link distance, ordered by I
// then J. Returns the number of links emitted.
func (f *LinkFinder) Find(points []r2.Vec, emit func(Link)) int {
	if f.UsesGrid(len(points)) {
		return f.FindGrid(points, emit)
	}
	return f.FindAllPairs(points, emit)
}

// FindAllPairs checks every unordered pair.
func (f *LinkFinder) FindAllPairs(points []r2.Vec, emit func(Link)) int {
	count := 0
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			if f.check(points, i, j, emit) {
				count++
			}
		}
	}
	return count
}

// FindGrid checks only pairs in neighbouring grid cells. It emits exactly the
// links FindAllPairs would, in the same order.
func (f *LinkFinder) FindGrid(points []r2.Vec, emit func(Link)) int {
	f.grid.Build(points)

	count := 0
	for i, p := range points {
		f.neighbors = f.grid.NeighborsInto(f.neighbors[:0], p.X, p.Y)
		slices.Sort(f.neighbors)
		for _, j := range f.neighbors {
			if j <= i {
				continue
			}
			if f.check(points, i, j, emit) {
				count++
			}
		}
	}
	return count
}

func (f *LinkFinder) check(points []r2.Vec, i, j int, emit func(Link)) bool {
	dist := r2.Norm(r2.Sub(points[i], points[j]))
	if dist >= f.rules.Distance {
		return false
	}
	if emit != nil {
		emit(Link{I: i, J: j, Dist: dist, Alpha: f.rules.Alpha(dist)})
	}
	return true
}
