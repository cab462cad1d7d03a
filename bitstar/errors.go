package bitstar

import "errors"

// Configuration errors (spec.md §7): reported at setup/configuration time,
// fatal to Solve before any search work begins.
var (
	ErrMissingProblem                  = errors.New("bitstar: no start/goal/state space/objective configured")
	ErrNotExactlyOneStart               = errors.New("bitstar: exactly one start state is required")
	ErrPruneFractionOutOfRange          = errors.New("bitstar: prune_threshold_as_fractional_cost_change must be in [0,1]")
	ErrRewireFactorOutOfRange           = errors.New("bitstar: rewire_factor must be in [1.0, 2.0]")
	ErrNearestNeighborChangedAfterSetup = errors.New("bitstar: nearest-neighbor index factory changed after setup")
)

// Invariant-violation errors (spec.md §7): the core has no recovery path;
// the planner aborts.
var (
	ErrUnconnectedVertex = errors.New("bitstar: attempted to add a disconnected vertex to the tree")
	ErrNilState          = errors.New("bitstar: nil state")
)

// ErrSamplerNotAllocated reports an RNG seed access made before an informed
// sampler is allocated. The Planner has no RNG seed accessor, so no
// function in this package returns it.
var ErrSamplerNotAllocated = errors.New("bitstar: informed sampler not allocated")
