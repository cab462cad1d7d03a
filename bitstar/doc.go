// Package bitstar implements the search core of BIT* (Batch Informed
// Trees): an anytime, almost-surely asymptotically-optimal sampling-based
// motion planner.
//
// Given a start state, a goal state, a state space and an optimization
// objective, a Planner incrementally grows a tree rooted at the start by
// alternating between drawing batches of samples and consuming an
// admissibly-ordered queue of candidate edges, converging toward the
// optimal path as batches accumulate.
//
// The state space, the objective's cost algebra, the informed sampler and
// the nearest-neighbor index are all external collaborators (see the
// StateSpace, Objective, Sampler and VertexIndex interfaces); this
// package owns only the tree/queue/pruning machinery described in
// spec.md's search core. Package euclidean provides reference
// StateSpace, Objective and Sampler implementations for ℝⁿ, and this
// package's NewBruteForceIndex is the default VertexIndex; together they
// are sufficient to run the planner end to end.
package bitstar
