package euclidean

import (
	"context"
	"math"
	"math/rand"

	"github.com/clearpathrobotics/batch-informed-trees/bitstar"
)

// randSource is math/rand.Rand; named locally so Space.sampleUniform
// doesn't need to import math/rand itself.
type randSource = rand.Rand

// UniformSampler draws uniformly from the full state space, ignoring any
// best-cost bound. It is the sampler AllocInformedSampler falls back to
// for dimensions other than 2, where this package does not implement a
// closed-form prolate-hyperspheroid rotation.
type UniformSampler struct {
	space *Space
	rnd   *rand.Rand
}

// NewUniformSampler builds a full-space sampler seeded by seed. The seed is
// passed to rand.NewSource as-is, so 0 is an ordinary deterministic seed.
func NewUniformSampler(space *Space, seed int64) *UniformSampler {
	src := rand.New(rand.NewSource(seed)) //nolint:gosec
	return &UniformSampler{space: space, rnd: src}
}

func (u *UniformSampler) SampleUniform(ctx context.Context) (bitstar.State, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return u.space.sampleUniform(u.rnd), nil
}

func (u *UniformSampler) HasInformedMeasure() bool { return false }
func (u *UniformSampler) InformedMeasure() float64 { return u.space.Measure() }

// InformedSampler draws from the prolate hyperspheroid centered on the
// start/goal midpoint, the ellipsoidal subset of spec.md's GLOSSARY
// within which any state could still lie on a solution better than
// *bestCost. Implemented for 2D closed-form rotation only (spec.md §9's
// "neighbourhoodCost placeholder" and "k-nearest" notes flag similar
// scope limits elsewhere in this module); 3D Spaces fall back to
// UniformSampler via AllocInformedSampler.
type InformedSampler struct {
	space    *Space
	start    Point
	goal     Point
	cMin     float64
	center   Point
	cosTheta float64
	sinTheta float64
	bestCost *bitstar.Cost
	rnd      *rand.Rand
}

// NewInformedSampler builds a 2D informed sampler. bestCost is read by
// reference on every draw, per spec.md §9's design note that the shared
// cell must be kept in sync with the planner's own best_cost writes.
func NewInformedSampler(space *Space, start, goal Point, bestCost *bitstar.Cost, seed int64) *InformedSampler {
	diff := goal.Sub(start)
	cMin := math.Hypot(diff.X, diff.Y)
	theta := 0.0
	if cMin > 0 {
		theta = math.Atan2(diff.Y, diff.X)
	}
	return &InformedSampler{
		space:    space,
		start:    start,
		goal:     goal,
		cMin:     cMin,
		center:   NewPoint2((start.X+goal.X)/2, (start.Y+goal.Y)/2),
		cosTheta: math.Cos(theta),
		sinTheta: math.Sin(theta),
		bestCost: bestCost,
		rnd:      rand.New(rand.NewSource(seed)), //nolint:gosec
	}
}

func (s *InformedSampler) SampleUniform(ctx context.Context) (bitstar.State, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	cMax := float64(*s.bestCost)
	if math.IsInf(cMax, 1) || cMax <= s.cMin {
		return s.space.sampleUniform(s.rnd), nil
	}
	// Sample uniformly in the unit disk, then scale by the ellipse's
	// semi-axes and rotate+translate into world coordinates.
	r := math.Sqrt(s.rnd.Float64())
	phi := 2 * math.Pi * s.rnd.Float64()
	x, y := r*math.Cos(phi), r*math.Sin(phi)
	a := cMax / 2
	b := math.Sqrt(cMax*cMax-s.cMin*s.cMin) / 2
	lx, ly := x*a, y*b
	wx := lx*s.cosTheta - ly*s.sinTheta
	wy := lx*s.sinTheta + ly*s.cosTheta
	return NewPoint2(s.center.X+wx, s.center.Y+wy), nil
}

func (s *InformedSampler) HasInformedMeasure() bool {
	cMax := float64(*s.bestCost)
	return !math.IsInf(cMax, 1) && cMax > s.cMin
}

func (s *InformedSampler) InformedMeasure() float64 {
	cMax := float64(*s.bestCost)
	if math.IsInf(cMax, 1) || cMax <= s.cMin {
		return s.space.Measure()
	}
	a := cMax / 2
	b := math.Sqrt(cMax*cMax-s.cMin*s.cMin) / 2
	return math.Pi * a * b
}
