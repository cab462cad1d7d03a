package bitstar

import "encoding/json"

const (
	defaultRewireFactor    = 1.1
	defaultSamplesPerBatch = uint(100)
	defaultPruneFraction   = 0.01
)

// Options mirrors the "recognized options" of spec.md §6, following the
// teacher's "struct of primitives with JSON tags, merged over a
// map[string]interface{} extras bag" pattern
// (motionplan/plannerOptions.go's newBasicPlannerOptions/rrtStarConnectOptions).
type Options struct {
	UseStrictQueueOrdering bool `json:"use_strict_queue_ordering"`

	// RewireFactor (η) scales the RGG connection radius/k. Must lie in
	// [1.0, 2.0].
	RewireFactor float64 `json:"rewire_factor"`

	SamplesPerBatch uint `json:"samples_per_batch"`

	UseEdgeFailureTracking bool `json:"use_edge_failure_tracking"`

	UseKNearest bool `json:"use_k_nearest"`

	UseGraphPruning bool `json:"use_graph_pruning"`

	// PruneFraction is the fractional best-cost improvement (relative to
	// the cost at the last prune) required to trigger another prune. Must
	// lie in [0, 1].
	PruneFraction float64 `json:"prune_threshold_as_fractional_cost_change"`

	StopOnEachSolutionImprovement bool `json:"stop_on_each_solution_improvement"`

	// Seed is carried for callers' own bookkeeping; the Planner does not
	// read it. The sampler's RNG is seeded by the Objective that allocates
	// it (e.g. the seed argument of euclidean.NewPathLengthObjective).
	Seed int64 `json:"seed"`

	// extra carries unrecognized keys forward the way plannerOptions.extra
	// does, so callers layering their own config on top don't lose fields.
	extra map[string]interface{}
}

// NewOptions returns an Options populated with the defaults of spec.md §6.
func NewOptions() *Options {
	return &Options{
		RewireFactor:    defaultRewireFactor,
		SamplesPerBatch: defaultSamplesPerBatch,
		UseGraphPruning: true,
		PruneFraction:   defaultPruneFraction,
	}
}

// NewOptionsFromExtra layers JSON-decoded extra over the defaults, exactly
// as newRRTStarConnectOptions layers planOpts.extra over rrtStarConnectOptions.
func NewOptionsFromExtra(extra map[string]interface{}) (*Options, error) {
	opts := NewOptions()
	opts.extra = extra
	if len(extra) == 0 {
		return opts, nil
	}
	raw, err := json.Marshal(extra)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, opts); err != nil {
		return nil, err
	}
	return opts, nil
}

// Validate reports the configuration-error taxonomy of spec.md §7.
func (o *Options) Validate() error {
	if o.RewireFactor < 1.0 || o.RewireFactor > 2.0 {
		return ErrRewireFactorOutOfRange
	}
	if o.PruneFraction < 0 || o.PruneFraction > 1 {
		return ErrPruneFractionOutOfRange
	}
	if o.SamplesPerBatch < 1 {
		o.SamplesPerBatch = 1
	}
	return nil
}
