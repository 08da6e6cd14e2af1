package systems

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/holomesh/config"
)

func defaultLinkRules() LinkRules {
	return LinkRulesFromConfig(config.Default())
}

func collect(find func([]r2.Vec, func(Link)) int, points []r2.Vec) ([]Link, int) {
	var links []Link
	n := find(points, func(l Link) { links = append(links, l) })
	return links, n
}

func TestLinkAlphaFalloff(t *testing.T) {
	rules := defaultLinkRules()

	assert.Equal(t, 0.08, rules.Alpha(0), "zero distance gives the full alpha")
	assert.InDelta(t, 0.04, rules.Alpha(55), 1e-12)
	assert.InDelta(t, 0.02, rules.Alpha(82.5), 1e-12)
	assert.Equal(t, 0.0, rules.Alpha(110))
	assert.Equal(t, 0.0, rules.Alpha(250))
}

func TestFindCutoff(t *testing.T) {
	f := NewLinkFinder(defaultLinkRules())

	tests := []struct {
		name  string
		b     r2.Vec
		links int
	}{
		{"coincident", r2.Vec{X: 0, Y: 0}, 1},
		{"just inside", r2.Vec{X: 109.99, Y: 0}, 1},
		{"exactly at threshold", r2.Vec{X: 110, Y: 0}, 0},
		{"diagonal outside", r2.Vec{X: 80, Y: 80}, 0}, // ~113.1
		{"diagonal inside", r2.Vec{X: 70, Y: 70}, 1},  // ~98.99
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			links, n := collect(f.FindAllPairs, []r2.Vec{{X: 0, Y: 0}, tc.b})
			assert.Equal(t, tc.links, n)
			assert.Len(t, links, tc.links)
		})
	}
}

func TestFindCoincidentAlpha(t *testing.T) {
	f := NewLinkFinder(defaultLinkRules())

	links, _ := collect(f.FindAllPairs, []r2.Vec{{X: 40, Y: 40}, {X: 40, Y: 40}})
	require.Len(t, links, 1)
	assert.Equal(t, 0.08, links[0].Alpha)
	assert.Equal(t, 0, links[0].I)
	assert.Equal(t, 1, links[0].J)
}

func TestFindOrdersPairs(t *testing.T) {
	f := NewLinkFinder(defaultLinkRules())
	points := []r2.Vec{{X: 0, Y: 0}, {X: 50, Y: 0}, {X: 100, Y: 0}, {X: 500, Y: 500}}

	links, n := collect(f.FindAllPairs, points)
	require.Equal(t, 3, n)

	want := [][2]int{{0, 1}, {0, 2}, {1, 2}}
	for k, l := range links {
		assert.Equal(t, want[k], [2]int{l.I, l.J})
		assert.Less(t, l.I, l.J)
	}
}

func TestGridMatchesAllPairs(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	f := NewLinkFinder(defaultLinkRules())

	for _, n := range []int{0, 1, 40, 600} {
		points := make([]r2.Vec, n)
		for i := range points {
			// Include the respawn margin so points can sit off-surface
			points[i] = r2.Vec{X: rng.Float64()*2040 - 20, Y: rng.Float64()*1540 - 20}
		}

		all, allN := collect(f.FindAllPairs, points)
		grid, gridN := collect(f.FindGrid, points)

		assert.Equal(t, allN, gridN, "n=%d", n)
		assert.Equal(t, all, grid, "n=%d", n)
	}
}

func TestFindSelectsStrategy(t *testing.T) {
	rules := defaultLinkRules()
	rules.GridThreshold = 10
	f := NewLinkFinder(rules)

	assert.False(t, f.UsesGrid(10))
	assert.True(t, f.UsesGrid(11))

	rules.GridThreshold = 0
	assert.False(t, NewLinkFinder(rules).UsesGrid(100000))
}
