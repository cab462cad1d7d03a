package bitstar

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds Prometheus collectors for the progress properties of
// spec.md §6. It is optional: Solve works with a nil *Metrics (nothing is
// exported). The Planner sets the five gauges each time the solution
// improves; it does not advance the counters. Registration is left to the
// caller, following the convention of exposing typed collectors rather than a package-level
// global registry.
type Metrics struct {
	BestCost             prometheus.Gauge
	FreeStates           prometheus.Gauge
	VertexCount          prometheus.Gauge
	VertexQueueSize      prometheus.Gauge
	EdgeQueueSize        prometheus.Gauge
	Iterations           prometheus.Counter
	Batches              prometheus.Counter
	Prunes               prometheus.Counter
	Samples              prometheus.Counter
	VerticesEver         prometheus.Counter
	StatesPruned         prometheus.Counter
	VerticesDisconnected prometheus.Counter
	Rewirings            prometheus.Counter
	StateCollisionChecks prometheus.Counter
	EdgeCollisionChecks  prometheus.Counter
	NearestNeighborCalls prometheus.Counter
}

// NewMetrics builds a Metrics with every collector namespaced under
// "bitstar", labeled by the given planner instance name so multiple
// concurrent Solve calls (in separate processes/goroutines) can be told
// apart on the same registry.
func NewMetrics(instance string) *Metrics {
	labels := prometheus.Labels{"planner": instance}
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "bitstar",
			Name:        name,
			Help:        help,
			ConstLabels: labels,
		})
	}
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "bitstar",
			Name:        name,
			Help:        help,
			ConstLabels: labels,
		})
	}
	return &Metrics{
		BestCost:             gauge("best_cost", "current best solution cost"),
		FreeStates:           gauge("free_states", "samples currently in the pool"),
		VertexCount:          gauge("vertex_count", "vertices currently in the tree"),
		VertexQueueSize:      gauge("vertex_queue_size", "vertices awaiting expansion"),
		EdgeQueueSize:        gauge("edge_queue_size", "edges awaiting consideration"),
		Iterations:           counter("iterations_total", "main loop iterations"),
		Batches:              counter("batches_total", "sampling batches started"),
		Prunes:               counter("prunes_total", "full prune sweeps performed"),
		Samples:              counter("samples_total", "valid samples drawn"),
		VerticesEver:         counter("vertices_ever_total", "vertices ever added to the tree"),
		StatesPruned:         counter("states_pruned_total", "samples/vertices destroyed by pruning"),
		VerticesDisconnected: counter("vertices_disconnected_total", "tree vertices disconnected by pruning or resort"),
		Rewirings:            counter("rewirings_total", "tree rewires performed"),
		StateCollisionChecks: counter("state_collision_checks_total", "IsValid calls"),
		EdgeCollisionChecks:  counter("edge_collision_checks_total", "CheckMotion calls"),
		NearestNeighborCalls: counter("nearest_neighbor_calls_total", "NearestR/NearestK calls"),
	}
}

// Collectors returns every collector in m, for bulk prometheus.Registry
// registration.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.BestCost, m.FreeStates, m.VertexCount, m.VertexQueueSize, m.EdgeQueueSize,
		m.Iterations, m.Batches, m.Prunes, m.Samples, m.VerticesEver,
		m.StatesPruned, m.VerticesDisconnected, m.Rewirings,
		m.StateCollisionChecks, m.EdgeCollisionChecks, m.NearestNeighborCalls,
	}
}
