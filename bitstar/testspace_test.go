package bitstar

import (
	"context"
	"math"
	"math/rand"
)

// lineSpace is a minimal 1D StateSpace over float64 states, used across
// this package's tests in place of a full geometric reference space.
type lineSpace struct {
	lo, hi float64
	valid  func(float64) bool
}

func (s *lineSpace) Distance(a, b State) float64 { return math.Abs(a.(float64) - b.(float64)) }
func (s *lineSpace) IsValid(state State) bool {
	x := state.(float64)
	if x < s.lo || x > s.hi {
		return false
	}
	if s.valid == nil {
		return true
	}
	return s.valid(x)
}
func (s *lineSpace) CheckMotion(a, b State) bool {
	if !s.IsValid(a) || !s.IsValid(b) {
		return false
	}
	steps := 20
	pa, pb := a.(float64), b.(float64)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		if !s.IsValid(pa + t*(pb-pa)) {
			return false
		}
	}
	return true
}
func (s *lineSpace) Dimension() int   { return 1 }
func (s *lineSpace) Measure() float64 { return s.hi - s.lo }

// lineObjective is the additive path-length objective over lineSpace.
type lineObjective struct {
	space *lineSpace
}

func (o *lineObjective) MotionCost(a, b State) Cost          { return Cost(o.space.Distance(a, b)) }
func (o *lineObjective) MotionCostHeuristic(a, b State) Cost { return Cost(o.space.Distance(a, b)) }
func (o *lineObjective) Combine(costs ...Cost) Cost {
	var sum Cost
	for _, c := range costs {
		sum += c
	}
	return sum
}
func (o *lineObjective) BetterThan(a, b Cost) bool { return a < b }
func (o *lineObjective) InfiniteCost() Cost          { return InfCost }
func (o *lineObjective) IsSatisfied(Cost) bool       { return false }
func (o *lineObjective) AllocInformedSampler(StateSpace, State, State, *Cost) Sampler {
	return &lineUniformSampler{space: o.space, rnd: rand.New(rand.NewSource(1))} //nolint:gosec
}

// lineUniformSampler draws uniformly from lineSpace's bounds, standing in
// for euclidean.UniformSampler in tests that only need the 1D line.
type lineUniformSampler struct {
	space *lineSpace
	rnd   *rand.Rand
}

func (s *lineUniformSampler) SampleUniform(ctx context.Context) (State, error) {
	return s.space.lo + s.rnd.Float64()*(s.space.hi-s.space.lo), nil
}
func (s *lineUniformSampler) HasInformedMeasure() bool { return false }
func (s *lineUniformSampler) InformedMeasure() float64 { return s.space.Measure() }
