package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/holomesh/components"
	"github.com/pthm-cable/holomesh/config"
)

// Sizing derives the population size from surface area.
type Sizing struct {
	MinCount        int
	AreaPerParticle float64
}

// SizingFromConfig extracts population sizing from the loaded config.
func SizingFromConfig(cfg *config.Config) Sizing {
	return Sizing{
		MinCount:        cfg.Particles.MinCount,
		AreaPerParticle: cfg.Particles.AreaPerParticle,
	}
}

// SizeFor returns max(MinCount, floor(w*h / AreaPerParticle)).
// Zero or negative dimensions yield MinCount.
func (s Sizing) SizeFor(w, h int) int {
	area := Bounds{W: float64(w), H: float64(h)}.Area()
	n := 0
	if s.AreaPerParticle > 0 {
		n = int(math.Floor(area / s.AreaPerParticle))
	}
	return max(s.MinCount, n)
}

// generation is one complete particle collection. A Population only ever
// holds a fully built generation.
type generation struct {
	world  *ecs.World
	mapper *ecs.Map3[components.Position, components.Velocity, components.Appearance]
	filter *ecs.Filter3[components.Position, components.Velocity, components.Appearance]
	count  int
	area   float64
}

// Population owns the particle collection.
// It is not safe for concurrent use; the scheduler that owns the game is its
// only caller.
type Population struct {
	rules  ParticleRules
	sizing Sizing
	rng    RandomSource

	current *generation
	points  []r2.Vec // post-move positions from the last Advance
}

// NewPopulation creates an empty population. Call Rebuild to fill it.
func NewPopulation(rules ParticleRules, sizing Sizing, rng RandomSource) *Population {
	return &Population{
		rules:  rules,
		sizing: sizing,
		rng:    rng,
	}
}

// Rebuild discards the current collection and replaces it with SizeFor(w, h)
// freshly reset particles. The new collection is built completely before it
// is swapped in. Returns the new size.
func (p *Population) Rebuild(w, h int) int {
	n := p.sizing.SizeFor(w, h)
	b := Bounds{W: float64(max(w, 0)), H: float64(max(h, 0))}

	world := ecs.NewWorld()
	next := &generation{
		world:  world,
		mapper: ecs.NewMap3[components.Position, components.Velocity, components.Appearance](world),
		filter: ecs.NewFilter3[components.Position, components.Velocity, components.Appearance](world),
		count:  n,
		area:   b.Area(),
	}

	for i := 0; i < n; i++ {
		var (
			pos  components.Position
			vel  components.Velocity
			look components.Appearance
		)
		p.rules.Reset(p.rng, b, &pos, &vel, &look)
		next.mapper.NewEntity(&pos, &vel, &look)
	}

	p.current = next
	p.points = p.points[:0]
	return n
}

// Advance moves every particle and calls visit with its post-move state, in
// collection order. Post-move positions are kept for Points. Returns how many
// particles respawned.
func (p *Population) Advance(b Bounds, visit func(Particle)) int {
	p.points = p.points[:0]
	if p.current == nil {
		return 0
	}

	respawned := 0
	query := p.current.filter.Query()
	for query.Next() {
		pos, vel, look := query.Get()

		if p.rules.Move(p.rng, b, pos, vel, look) {
			respawned++
		}
		p.points = append(p.points, r2.Vec{X: pos.X, Y: pos.Y})

		if visit != nil {
			visit(Particle{Pos: *pos, Vel: *vel, Look: *look})
		}
	}
	return respawned
}

// Points returns the positions recorded by the last Advance. The slice is
// reused by the next Advance or Rebuild.
func (p *Population) Points() []r2.Vec {
	return p.points
}

// Snapshot copies the current particles in collection order.
func (p *Population) Snapshot() []Particle {
	if p.current == nil {
		return nil
	}
	out := make([]Particle, 0, p.current.count)
	query := p.current.filter.Query()
	for query.Next() {
		pos, vel, look := query.Get()
		out = append(out, Particle{Pos: *pos, Vel: *vel, Look: *look})
	}
	return out
}

// Len returns the number of particles in the current collection.
func (p *Population) Len() int {
	if p.current == nil {
		return 0
	}
	return p.current.count
}

// Area returns the surface area the current collection was built for.
func (p *Population) Area() float64 {
	if p.current == nil {
		return 0
	}
	return p.current.area
}

// Sizing returns the sizing rule used by Rebuild.
func (p *Population) Sizing() Sizing {
	return p.sizing
}
