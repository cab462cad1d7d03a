package bitstar

import (
	"context"
	"math"
)

// State is an opaque point in the state space being planned over. The core
// never inspects a State's contents; it only ever passes them back to the
// StateSpace, Objective and Sampler that produced them.
type State interface{}

// Cost is a scalar path cost, following ompl::base::Cost's own choice of
// wrapping a single float64 rather than an opaque algebraic type: every
// objective this module ships (and every one described in spec.md's
// boundary scenarios) reduces to additive real-valued cost, and a bare
// float64 keeps hot-path comparisons allocation-free.
type Cost float64

// InfCost is the sentinel returned by objectives for unreachable/unbounded
// cost. Comparisons against it behave as expected under IEEE 754 math.
var InfCost = Cost(math.Inf(1))

// StateSpace is the geometry and validity oracle the planner samples and
// searches over. It is consumed, never implemented, by this package.
type StateSpace interface {
	// Distance returns the true (not necessarily admissible) distance
	// between two states, used as the true edge cost for path-length-like
	// objectives and to seed neighborhood queries.
	Distance(a, b State) float64

	// IsValid reports whether a state satisfies all constraints in
	// isolation (collision-free, in-bounds, etc).
	IsValid(s State) bool

	// CheckMotion discretely validates the segment between two already-
	// valid states, returning false if any intermediate sample is invalid.
	CheckMotion(a, b State) bool

	// Dimension returns the dimensionality of the space, used by the RGG
	// radius/k controller.
	Dimension() int

	// Measure returns the Lebesgue measure of the full state space.
	Measure() float64
}

// Objective is the pluggable cost algebra and admissible-heuristic source.
// All heuristics it returns must be admissible (never overestimate true
// cost); BIT*'s pruning soundness depends on it.
type Objective interface {
	// MotionCost returns the true cost of moving from a to b, as measured
	// after a successful CheckMotion (e.g. path length, or a weighted
	// combination of length and clearance).
	MotionCost(a, b State) Cost

	// MotionCostHeuristic returns an admissible lower bound on MotionCost,
	// usable before a motion has been validated.
	MotionCostHeuristic(a, b State) Cost

	// Combine folds a sequence of costs incurred in order into a single
	// cost (e.g. summation for path-length objectives).
	Combine(costs ...Cost) Cost

	// BetterThan reports whether a is strictly preferable to b. Lower is
	// better for every objective in this module.
	BetterThan(a, b Cost) bool

	// InfiniteCost returns the objective's representation of an
	// unreachable/unbounded cost.
	InfiniteCost() Cost

	// IsSatisfied reports whether a solution of the given cost is good
	// enough to stop searching for a better one.
	IsSatisfied(c Cost) bool

	// AllocInformedSampler builds a Sampler that draws states from the
	// subset of the space that could still improve on *bestCost. bestCost
	// is read by the sampler on every draw, so the caller must keep it
	// updated in place rather than replacing the pointee's owner.
	AllocInformedSampler(space StateSpace, start, goal State, bestCost *Cost) Sampler
}

// Sampler draws candidate states from the state space, optionally
// restricted to an informed subset that could still improve on the best
// known solution.
type Sampler interface {
	// SampleUniform draws one state. Implementations that restrict
	// themselves to an informed subset must consult *bestCost (captured at
	// construction via Objective.AllocInformedSampler) on every call.
	SampleUniform(ctx context.Context) (State, error)

	// HasInformedMeasure reports whether InformedMeasure reflects a proper
	// subset of the full space measure. When false, callers should use the
	// state space's full Measure() instead.
	HasInformedMeasure() bool

	// InformedMeasure returns the Lebesgue measure of the informed subset.
	InformedMeasure() float64
}

// VertexIndex is a generic nearest-neighbor container over a set of
// Vertices, keyed by the enclosing StateSpace's distance function. Both
// the sample pool (C5) and the tree (C6) hold one.
type VertexIndex interface {
	Add(v *Vertex)
	Remove(v *Vertex)
	Clear()
	List() []*Vertex
	Size() int
	NearestR(q *Vertex, r float64) []*Vertex
	NearestK(q *Vertex, k int) []*Vertex
}

// VertexIndexFactory constructs a fresh, empty VertexIndex bound to space.
// Supplying one lets a caller drop in a real spatial index (kd-tree,
// R-tree, ...) in place of the default brute-force scan.
type VertexIndexFactory func(space StateSpace) VertexIndex
