package systems

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/holomesh/config"
)

func newTestPopulation(seed int64) *Population {
	cfg := config.Default()
	return NewPopulation(RulesFromConfig(cfg), SizingFromConfig(cfg), rand.New(rand.NewSource(seed)))
}

func TestSizeFor(t *testing.T) {
	sizing := SizingFromConfig(config.Default())

	tests := []struct {
		w, h int
		want int
	}{
		{1280, 720, 40},   // floor(921600/90000) = 10
		{1920, 1080, 40},  // floor(2073600/90000) = 23
		{0, 0, 40},        // degenerate surface
		{0, 1080, 40},     // zero width
		{-100, 500, 40},   // negative width treated as empty
		{3000, 1200, 40},  // area 3,600,000 -> exactly 40
		{4000, 1000, 44},  // area 4,000,000
		{3840, 2160, 92},  // 4K: floor(8294400/90000)
		{10000, 9000, 1000},
	}

	for _, tc := range tests {
		got := sizing.SizeFor(tc.w, tc.h)
		assert.Equal(t, tc.want, got, "SizeFor(%d, %d)", tc.w, tc.h)
	}
}

func TestSizeForFloorDominatesBelowThreshold(t *testing.T) {
	sizing := SizingFromConfig(config.Default())

	// floor(area/90000) first exceeds 40 once area reaches 41*90000
	assert.Equal(t, 40, sizing.SizeFor(90000, 40))
	assert.Equal(t, 41, sizing.SizeFor(90000, 41))
}

func TestRebuildMatchesSizeFor(t *testing.T) {
	pop := newTestPopulation(1)

	for _, dims := range [][2]int{{1280, 720}, {3840, 2160}, {0, 0}, {500, 0}} {
		n := pop.Rebuild(dims[0], dims[1])
		want := pop.Sizing().SizeFor(dims[0], dims[1])
		assert.Equal(t, want, n)
		assert.Equal(t, want, pop.Len())
		assert.Len(t, pop.Snapshot(), want)
	}
}

func TestRebuildPopulatesValidParticles(t *testing.T) {
	pop := newTestPopulation(2)
	pop.Rebuild(1920, 1080)

	b := Bounds{W: 1920, H: 1080}
	for _, p := range pop.Snapshot() {
		assertResetRanges(t, b, p.Pos, p.Vel, p.Look)
	}
	assert.Equal(t, 1920.0*1080.0, pop.Area())
}

func TestRebuildTwiceGivesIndependentPopulations(t *testing.T) {
	pop := newTestPopulation(3)

	pop.Rebuild(3840, 2160)
	first := pop.Snapshot()
	pop.Rebuild(3840, 2160)
	second := pop.Snapshot()

	require.Len(t, second, len(first))
	assert.NotEqual(t, first, second, "rebuild should randomize a fresh population")
}

func TestRebuildReplacesWholeCollection(t *testing.T) {
	pop := newTestPopulation(4)

	pop.Rebuild(3840, 2160)
	require.Equal(t, 92, pop.Len())

	pop.Rebuild(1280, 720)
	assert.Equal(t, 40, pop.Len())
	assert.Len(t, pop.Snapshot(), 40)
	assert.Empty(t, pop.Points(), "points from the old collection are dropped")
}

func TestAdvanceVisitsEveryParticleAfterMove(t *testing.T) {
	pop := newTestPopulation(5)
	pop.Rebuild(1280, 720)
	before := pop.Snapshot()

	b := Bounds{W: 1280, H: 720}
	var visited []Particle
	pop.Advance(b, func(p Particle) {
		visited = append(visited, p)
	})

	require.Len(t, visited, len(before))
	points := pop.Points()
	require.Len(t, points, len(before))

	for i, p := range visited {
		assert.Equal(t, p.Pos.X, points[i].X)
		assert.Equal(t, p.Pos.Y, points[i].Y)
		assert.InDelta(t, before[i].Pos.X+before[i].Vel.X, p.Pos.X, 1e-9)
		assert.InDelta(t, before[i].Pos.Y+before[i].Vel.Y, p.Pos.Y, 1e-9)
	}
}

func TestAdvanceRespawnsAfterShrink(t *testing.T) {
	pop := newTestPopulation(6)
	pop.Rebuild(4000, 4000)

	// Surface shrinks without a rebuild; most particles now sit far past the margin
	small := Bounds{W: 100, H: 100}
	respawned := pop.Advance(small, nil)

	assert.Greater(t, respawned, 0)
	rules := RulesFromConfig(config.Default())
	for _, p := range pop.Points() {
		assert.True(t, rules.InBounds(small, p.X, p.Y))
	}
}

func TestAdvanceBeforeRebuild(t *testing.T) {
	pop := newTestPopulation(7)

	assert.Equal(t, 0, pop.Advance(Bounds{W: 10, H: 10}, func(Particle) {
		t.Fatal("no particles expected before the first rebuild")
	}))
	assert.Equal(t, 0, pop.Len())
	assert.Nil(t, pop.Snapshot())
}
