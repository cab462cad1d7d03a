package euclidean

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/clearpathrobotics/batch-informed-trees/bitstar"
)

// ValidatorFunc reports whether a Point satisfies every constraint in
// isolation. always_valid from spec.md §8 is AlwaysValid below; the
// single-wall-obstacle scenario is WallObstacle.
type ValidatorFunc func(p Point) bool

// AlwaysValid accepts every point, matching spec.md §8's trivial
// validator.
func AlwaysValid(Point) bool { return true }

// WallObstacle rejects the band spec.md §8 scenario 3 describes: states
// with 0.4<x<0.6 and y<0.8, forcing a detour around a vertical wall.
func WallObstacle(p Point) bool {
	return !(p.X > 0.4 && p.X < 0.6 && p.Y < 0.8)
}

// Space is a reference bitstar.StateSpace over an axis-aligned box in
// R^2 or R^3, following the teacher's defaultDistanceFunc
// (motionplan/plannerOptions.go) of a plain two-norm over the relevant
// components.
type Space struct {
	dim        int
	min, max   Point
	valid      ValidatorFunc
	resolution float64
}

// NewSpace2 builds a 2D Space over [minX,maxX]x[minY,maxY].
func NewSpace2(minX, minY, maxX, maxY float64, valid ValidatorFunc, resolution float64) *Space {
	if valid == nil {
		valid = AlwaysValid
	}
	return &Space{
		dim:        2,
		min:        NewPoint2(minX, minY),
		max:        NewPoint2(maxX, maxY),
		valid:      valid,
		resolution: resolution,
	}
}

// NewSpace3 builds a 3D Space over an axis-aligned box.
func NewSpace3(min, max Point, valid ValidatorFunc, resolution float64) *Space {
	if valid == nil {
		valid = AlwaysValid
	}
	return &Space{dim: 3, min: min, max: max, valid: valid, resolution: resolution}
}

func (s *Space) components(p Point) []float64 {
	if s.dim == 2 {
		return []float64{p.X, p.Y}
	}
	return []float64{p.X, p.Y, p.Z}
}

// Distance returns the Euclidean two-norm between a and b, exactly the
// teacher's defaultDistanceFunc shape (floats.Norm(diff, 2)).
func (s *Space) Distance(a, b bitstar.State) float64 {
	pa, pb := a.(Point), b.(Point)
	ca, cb := s.components(pa), s.components(pb)
	diff := make([]float64, len(ca))
	for i := range ca {
		diff[i] = ca[i] - cb[i]
	}
	return floats.Norm(diff, 2)
}

// IsValid reports whether p is in-bounds and passes the configured
// validator.
func (s *Space) IsValid(state bitstar.State) bool {
	p := state.(Point)
	c := s.components(p)
	lo, hi := s.components(s.min), s.components(s.max)
	for i := range c {
		if c[i] < lo[i] || c[i] > hi[i] {
			return false
		}
	}
	return s.valid(p)
}

// CheckMotion discretely validates the segment a->b at Resolution-sized
// steps, matching the teacher's CheckConstraintPath stepping pattern
// (motionplan/plannerOptions.go's Resolution field).
func (s *Space) CheckMotion(a, b bitstar.State) bool {
	pa, pb := a.(Point), b.(Point)
	dist := s.Distance(a, b)
	if dist == 0 {
		return s.IsValid(pa)
	}
	steps := int(math.Ceil(dist / s.resolution))
	if steps < 1 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		mid := pa.Add(pb.Sub(pa).Mul(t))
		if !s.IsValid(mid) {
			return false
		}
	}
	return true
}

// Dimension returns the configured dimensionality (2 or 3).
func (s *Space) Dimension() int { return s.dim }

// Measure returns the Lebesgue measure of the bounding box.
func (s *Space) Measure() float64 {
	lo, hi := s.components(s.min), s.components(s.max)
	m := 1.0
	for i := range lo {
		m *= hi[i] - lo[i]
	}
	return m
}

// sampleUniform draws a point uniformly within the space's bounding box,
// ignoring validity; used by UniformSampler, and by InformedSampler while
// no finite best cost bounds its ellipse.
func (s *Space) sampleUniform(rnd *randSource) Point {
	if s.dim == 2 {
		return NewPoint2(
			s.min.X+rnd.Float64()*(s.max.X-s.min.X),
			s.min.Y+rnd.Float64()*(s.max.Y-s.min.Y),
		)
	}
	return NewPoint3(
		s.min.X+rnd.Float64()*(s.max.X-s.min.X),
		s.min.Y+rnd.Float64()*(s.max.Y-s.min.Y),
		s.min.Z+rnd.Float64()*(s.max.Z-s.min.Z),
	)
}
