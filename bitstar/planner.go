package bitstar

import (
	"context"
	"math"
)

// TerminationFunc is the external termination predicate of spec.md §5/§6,
// polled at the top of every iteration. Returning true asks the planner
// to stop at the next safepoint.
type TerminationFunc func() bool

// PlannerConfig bundles the external collaborators and configuration a
// Planner needs at setup (spec.md §4.7 step 1-5, §6).
type PlannerConfig struct {
	Start     State
	Goal      State
	Space     StateSpace
	Objective Objective
	Options   *Options

	// IndexFactory builds the VertexIndex backing both the tree and the
	// sample pool. Defaults to NewBruteForceIndex. Per spec.md §7, changing
	// this after setup is a configuration error; there is no setter.
	IndexFactory VertexIndexFactory

	Logger  Logger
	Metrics *Metrics
}

// Planner (C7) is the BIT* search core's main loop: batch creation, edge
// extraction, edge validation, rewiring and pruning orchestration over a
// Tree, SamplePool and IntegratedQueue.
type Planner struct {
	space   StateSpace
	obj     Objective
	options *Options
	logger  Logger
	metrics *Metrics

	start *Vertex
	goal  *Vertex

	tree   *Tree
	pool   *SamplePool
	oracle *heuristicOracle
	rgg    *RGGController
	queue  *IntegratedQueue

	sampler Sampler

	bestCost    Cost
	prunedCost  Cost
	minCost     Cost
	costSampled Cost

	iterations           uint64
	batches              uint64
	prunes               uint64
	samples              uint64
	verticesEver         uint64
	statesPruned         uint64
	verticesDisconnected uint64
	rewirings            uint64
	stateCollisionChecks uint64
	edgeCollisionChecks  uint64
}

// NewPlanner validates cfg and performs the setup of spec.md §4.7 steps
//1-5: allocates the start/goal vertices, the informed sampler, and the
// initial RGG radius/k.
func NewPlanner(cfg PlannerConfig) (*Planner, error) {
	if cfg.Space == nil || cfg.Objective == nil {
		return nil, ErrMissingProblem
	}
	if cfg.Start == nil {
		return nil, ErrNotExactlyOneStart
	}
	if cfg.Goal == nil {
		return nil, ErrNilState
	}
	opts := cfg.Options
	if opts == nil {
		opts = NewOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = noopLogger{}
	}
	factory := cfg.IndexFactory
	if factory == nil {
		factory = NewBruteForceIndex
	}

	start := NewRootVertex(cfg.Start)
	goal := NewVertex(cfg.Goal)

	tree := NewTree(factory(cfg.Space), start)
	pool := NewSamplePool(factory(cfg.Space))
	pool.Add(goal)

	oracle := newHeuristicOracle(cfg.Objective, start, goal)
	rgg := NewRGGController(cfg.Space.Dimension(), cfg.Space.Measure(), opts.RewireFactor, opts.UseKNearest)
	rgg.Update(tree.Size()+pool.Size(), cfg.Space.Measure(), false)

	p := &Planner{
		space:       cfg.Space,
		obj:         cfg.Objective,
		options:     opts,
		logger:      logger,
		metrics:     cfg.Metrics,
		start:       start,
		goal:        goal,
		tree:        tree,
		pool:        pool,
		oracle:      oracle,
		rgg:         rgg,
		bestCost:    cfg.Objective.InfiniteCost(),
		prunedCost:  cfg.Objective.InfiniteCost(),
		minCost:     oracle.GHat(goal),
		costSampled: cfg.Objective.InfiniteCost(),
	}
	p.sampler = cfg.Objective.AllocInformedSampler(cfg.Space, cfg.Start, cfg.Goal, &p.bestCost)
	p.queue = NewIntegratedQueue(oracle, cfg.Objective, cfg.Space, tree, pool, rgg, opts.UseEdgeFailureTracking)
	p.queue.InsertVertex(start)
	p.verticesEver = 1

	logger.Infow("bitstar planner configured", "rewire_factor", opts.RewireFactor, "samples_per_batch", opts.SamplesPerBatch, "min_cost", float64(p.minCost))
	return p, nil
}

// BestCost returns the current best known solution cost (InfCost if none
// found yet).
func (p *Planner) BestCost() Cost { return p.bestCost }

// HasSolution reports whether a finite-cost path to the goal exists.
func (p *Planner) HasSolution() bool { return !math.IsInf(float64(p.bestCost), 1) }

// BestPath walks the goal vertex's parent chain back to the root and
// returns the states root-to-goal. Returns nil if no solution exists, and
// the single start state when start and goal are the same state.
func (p *Planner) BestPath() []State {
	if !p.HasSolution() {
		return nil
	}
	if p.space.Distance(p.start.State, p.goal.State) == 0 {
		return []State{p.start.State}
	}
	var path []State
	for v := p.goal; v != nil; v = v.Parent() {
		path = append(path, v.State)
		if v.IsRoot() {
			break
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Progress is a snapshot of the progress properties of spec.md §6.
type Progress struct {
	BestCost             Cost
	FreeStates           int
	VertexCount          int
	VertexQueueSize      int
	EdgeQueueSize        int
	Iterations           uint64
	Batches              uint64
	Prunes               uint64
	Samples              uint64
	VerticesEver         uint64
	StatesPruned         uint64
	VerticesDisconnected uint64
	Rewirings            uint64
	StateCollisionChecks uint64
	EdgeCollisionChecks  uint64
	NearestNeighborCalls uint64
}

// Progress returns a snapshot of every progress property spec.md §6
// names.
func (p *Planner) Progress() Progress {
	return Progress{
		BestCost:             p.bestCost,
		FreeStates:           p.pool.Size(),
		VertexCount:          p.tree.Size(),
		VertexQueueSize:      p.queue.NumVertices(),
		EdgeQueueSize:        p.queue.NumEdges(),
		Iterations:           p.iterations,
		Batches:              p.batches,
		Prunes:               p.prunes,
		Samples:              p.samples,
		VerticesEver:         p.verticesEver,
		StatesPruned:         p.statesPruned,
		VerticesDisconnected: p.verticesDisconnected,
		Rewirings:            p.rewirings,
		StateCollisionChecks: p.stateCollisionChecks,
		EdgeCollisionChecks:  p.edgeCollisionChecks,
		NearestNeighborCalls: p.queue.nnCalls,
	}
}

func (p *Planner) reportMetrics() {
	if p.metrics == nil {
		return
	}
	pr := p.Progress()
	p.metrics.BestCost.Set(float64(pr.BestCost))
	p.metrics.FreeStates.Set(float64(pr.FreeStates))
	p.metrics.VertexCount.Set(float64(pr.VertexCount))
	p.metrics.VertexQueueSize.Set(float64(pr.VertexQueueSize))
	p.metrics.EdgeQueueSize.Set(float64(pr.EdgeQueueSize))
}

// Step runs a single main-loop iteration of spec.md §4.7. It returns
// false once the loop should stop (objective satisfied, termination
// requested, or min_cost >= best_cost); Run drives Step in a loop, and
// callers that need per-iteration control (e.g. a progress callback, as
// in cmd/bitstar-demo) drive Step themselves instead of calling Run.
func (p *Planner) Step(ctx context.Context, term TerminationFunc) (bool, error) {
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	default:
	}
	if p.obj.IsSatisfied(p.bestCost) {
		return false, nil
	}
	if term != nil && term() {
		return false, nil
	}
	if !p.obj.BetterThan(p.minCost, p.bestCost) {
		return false, nil
	}

	p.iterations++

	if p.options.UseStrictQueueOrdering && !p.queue.IsSorted() {
		p.queue.Resort()
	}

	u, x, ok := p.queue.PopFrontEdge()
	if !ok {
		if err := p.newBatch(ctx); err != nil {
			return false, err
		}
		return true, nil
	}

	cHat := p.oracle.CHat(u, x)
	hHatX := p.oracle.HHatV(x)

	// Gate A: is this edge still admissibly capable of beating best_cost?
	fThroughEdge := p.obj.Combine(p.oracle.GT(u), cHat, hHatX)
	if !p.obj.BetterThan(fThroughEdge, p.bestCost) {
		if !p.queue.IsSorted() {
			p.queue.Resort()
			return true, nil
		}
		p.queue.Finish()
		return true, nil
	}

	trueCost := p.obj.MotionCost(u.State, x.State)

	// Gate B: same admissibility test, now with the true edge cost.
	if !p.obj.BetterThan(p.obj.Combine(p.oracle.GHat(u), trueCost, hHatX), p.bestCost) {
		if p.options.UseEdgeFailureTracking {
			u.MarkFailedChild(x)
		}
		return true, nil
	}

	p.edgeCollisionChecks++
	if !p.space.CheckMotion(u.State, x.State) {
		if p.options.UseEdgeFailureTracking {
			u.MarkFailedChild(x)
		}
		return true, nil
	}

	if p.obj.BetterThan(p.obj.Combine(p.oracle.GT(u), trueCost), x.CostToCome()) {
		p.addEdge(u, x, trueCost)
		p.queue.PruneEdgesTo(x)

		if p.obj.BetterThan(p.oracle.GT(p.goal), p.bestCost) {
			p.bestCost = p.oracle.GT(p.goal)
			p.queue.SetThreshold(p.bestCost)
			p.logger.Infow("bitstar solution improved", "best_cost", float64(p.bestCost), "batch", p.batches, "iteration", p.iterations)
			p.reportMetrics()
			if p.options.StopOnEachSolutionImprovement {
				return false, nil
			}
		}
	}
	return true, nil
}

// Run drives Step to completion, returning once the main loop's exit
// condition fires (spec.md §8 invariant 7: termination in finite
// additional iterations). The returned bool reports whether a solution
// was found (solution_found of spec.md §6's exit status; approximate
// reporting is always false per spec.md §1's non-goals).
func (p *Planner) Run(ctx context.Context, term TerminationFunc) (bool, error) {
	for {
		more, err := p.Step(ctx, term)
		if err != nil {
			return false, err
		}
		if !more {
			break
		}
	}
	return p.HasSolution(), nil
}

// newBatch implements spec.md §4.7.1: reset the queue, re-seed it with
// every current tree vertex, (maybe) prune, and (per spec.md §9's Open
// Question #1 resolution) eagerly sample samples_per_batch states rather
// than deferring to the first neighbor query of the batch.
func (p *Planner) newBatch(ctx context.Context) error {
	p.batches++
	p.costSampled = p.minCost
	p.queue.Reset()
	p.maybePrune()
	for _, v := range p.tree.List() {
		p.queue.InsertVertex(v)
	}
	p.logger.Debugw("bitstar new batch", "batch", p.batches, "tree_size", p.tree.Size(), "pool_size", p.pool.Size())
	if p.obj.BetterThan(p.costSampled, p.bestCost) {
		if err := p.drawSamples(ctx); err != nil {
			return err
		}
	}
	return nil
}

// drawSamples fills the pool with up to SamplesPerBatch valid states from
// the informed sampler, then recomputes the RGG radius/k from the new
// pool+tree size. The JIT/lazy-sampling code path described as commented
// out in the source (spec.md §9) is intentionally not implemented here;
// a caller wanting it would need to plumb a hypothetical-measure query
// the Sampler interface doesn't currently expose.
func (p *Planner) drawSamples(ctx context.Context) error {
	for i := uint(0); i < p.options.SamplesPerBatch; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		s, err := p.sampler.SampleUniform(ctx)
		if err != nil {
			return err
		}
		p.stateCollisionChecks++
		if !p.space.IsValid(s) {
			continue
		}
		p.pool.Add(NewVertex(s))
		p.samples++
	}
	p.costSampled = p.obj.InfiniteCost()
	mu := p.space.Measure()
	if p.sampler.HasInformedMeasure() {
		mu = p.sampler.InformedMeasure()
	}
	p.rgg.Update(p.tree.Size()+p.pool.Size(), mu, p.sampler.HasInformedMeasure())
	return nil
}

// maybePrune implements spec.md §4.7.3's trigger conditions: pruning is
// enabled, a solution exists, the fractional cost improvement since the
// last prune exceeds PruneFraction (an infinite prior cost counts as an
// infinite improvement), and the informed subset is actually smaller than
// the full space.
func (p *Planner) maybePrune() {
	if !p.options.UseGraphPruning {
		return
	}
	if !p.HasSolution() {
		return
	}
	if !math.IsInf(float64(p.prunedCost), 1) {
		frac := (float64(p.prunedCost) - float64(p.bestCost)) / float64(p.prunedCost)
		if frac <= p.options.PruneFraction {
			return
		}
	}
	if !p.sampler.HasInformedMeasure() || p.sampler.InformedMeasure() >= p.space.Measure() {
		return
	}
	disconnected, destroyed := p.queue.Prune()
	p.prunedCost = p.bestCost
	p.prunes++
	p.verticesDisconnected += uint64(disconnected)
	p.statesPruned += uint64(destroyed)
	p.logger.Infow("bitstar prune", "disconnected", disconnected, "destroyed", destroyed, "best_cost", float64(p.bestCost))
}

// addEdge implements spec.md §4.7.2: rewire an already-connected x under
// u, or extend the tree with x as a new child of u.
func (p *Planner) addEdge(u, x *Vertex, trueCost Cost) {
	if x.InTree() {
		x.ClearParent()
		x.SetParent(u, trueCost, true, p.obj)
		u.AddChild(x)
		for _, d := range x.Subtree() {
			p.queue.MarkVertexUnsorted(d)
		}
		p.rewirings++
		p.logger.Debugw("bitstar rewire", "vertex", x.ID, "new_parent", u.ID, "cost", float64(x.CostToCome()))
		return
	}
	x.SetParent(u, trueCost, true, p.obj)
	u.AddChild(x)
	p.pool.Remove(x)
	_ = p.tree.Add(x)
	p.queue.InsertVertex(x)
	p.verticesEver++
}
