package bitstar

import (
	"container/heap"
	"sort"

	"github.com/google/uuid"
)

// edgeEntry is a queued candidate edge: a logical (parent, child) pair
// with a cached sort key (spec.md §3's "Queue entry"). It has no identity
// of its own; it exists only inside the edge heap and the book-keeping
// maps below.
type edgeEntry struct {
	parent *Vertex
	child  *Vertex
	key    edgeKey
	index  int
}

type pairID struct {
	parent uuid.UUID
	child  uuid.UUID
}

// vertexHeap orders tree vertices awaiting expansion by
// current_heuristic_vertex (lower is better). Satisfies heap.Interface.
type vertexHeap struct {
	items  []*Vertex
	oracle *heuristicOracle
	obj    Objective
}

func (h *vertexHeap) Len() int { return len(h.items) }
func (h *vertexHeap) Less(i, j int) bool {
	return h.obj.BetterThan(h.oracle.CurrentHeuristicVertex(h.items[i]), h.oracle.CurrentHeuristicVertex(h.items[j]))
}
func (h *vertexHeap) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.items[i].vHeapIndex = i
	h.items[j].vHeapIndex = j
}
func (h *vertexHeap) Push(x interface{}) {
	v := x.(*Vertex)
	v.vHeapIndex = len(h.items)
	h.items = append(h.items, v)
}
func (h *vertexHeap) Pop() interface{} {
	n := len(h.items)
	v := h.items[n-1]
	h.items[n-1] = nil
	h.items = h.items[:n-1]
	v.vHeapIndex = -1
	return v
}

// edgeQueueHeap orders candidate edges by their cached edgeKey (lower is
// better). Satisfies heap.Interface.
type edgeQueueHeap struct {
	items []*edgeEntry
	obj   Objective
}

func (h *edgeQueueHeap) Len() int { return len(h.items) }
func (h *edgeQueueHeap) Less(i, j int) bool {
	return h.items[i].key.less(h.items[j].key, h.obj)
}
func (h *edgeQueueHeap) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.items[i].index = i
	h.items[j].index = j
}
func (h *edgeQueueHeap) Push(x interface{}) {
	e := x.(*edgeEntry)
	e.index = len(h.items)
	h.items = append(h.items, e)
}
func (h *edgeQueueHeap) Pop() interface{} {
	n := len(h.items)
	e := h.items[n-1]
	h.items[n-1] = nil
	h.items = h.items[:n-1]
	e.index = -1
	return e
}

// IntegratedQueue is the two-level priority queue of spec.md §4.4 (C4):
// one heap of tree vertices awaiting expansion, one heap of candidate
// edges, with the edge heap lazily refilled by expanding vertices on
// demand.
type IntegratedQueue struct {
	oracle *heuristicOracle
	obj    Objective
	space  StateSpace
	tree   *Tree
	pool   *SamplePool
	rgg    *RGGController

	failureTracking bool
	threshold       Cost

	vertexHeap vertexHeap
	edgeHeap   edgeQueueHeap

	edgesByPair   map[pairID]*edgeEntry
	edgesByTarget map[uuid.UUID][]*edgeEntry

	unsorted map[uuid.UUID]*Vertex

	epoch   uint64
	nnCalls uint64
}

// NewIntegratedQueue builds an empty queue bound to the given collaborators.
func NewIntegratedQueue(oracle *heuristicOracle, obj Objective, space StateSpace, tree *Tree, pool *SamplePool, rgg *RGGController, failureTracking bool) *IntegratedQueue {
	q := &IntegratedQueue{
		oracle:          oracle,
		obj:             obj,
		space:           space,
		tree:            tree,
		pool:            pool,
		rgg:             rgg,
		failureTracking: failureTracking,
		threshold:       obj.InfiniteCost(),
	}
	q.Reset()
	return q
}

func pairKey(parent, child *Vertex) pairID { return pairID{parent: parent.ID, child: child.ID} }

// Reset empties both queues and bumps the expansion epoch. It does not
// re-queue the tree's vertices; a caller re-inserts them with InsertVertex
// (as Planner.newBatch does) to have them expanded again.
func (q *IntegratedQueue) Reset() {
	q.vertexHeap = vertexHeap{oracle: q.oracle, obj: q.obj}
	q.edgeHeap = edgeQueueHeap{obj: q.obj}
	q.edgesByPair = make(map[pairID]*edgeEntry)
	q.edgesByTarget = make(map[uuid.UUID][]*edgeEntry)
	q.unsorted = make(map[uuid.UUID]*Vertex)
	q.epoch++
	for _, v := range q.tree.List() {
		v.vHeapIndex = -1
		v.edgesOut = nil
		v.edgesIn = nil
	}
}

// Finish clears both queues without bumping the epoch, used when the main
// loop declares the current batch exhausted.
func (q *IntegratedQueue) Finish() {
	q.vertexHeap = vertexHeap{oracle: q.oracle, obj: q.obj}
	q.edgeHeap = edgeQueueHeap{obj: q.obj}
	q.edgesByPair = make(map[pairID]*edgeEntry)
	q.edgesByTarget = make(map[uuid.UUID][]*edgeEntry)
}

// InsertVertex adds v to the vertex queue if it isn't already queued.
func (q *IntegratedQueue) InsertVertex(v *Vertex) {
	if v.vHeapIndex != -1 {
		return
	}
	heap.Push(&q.vertexHeap, v)
}

// SetThreshold records the queue's view of the current best solution
// cost, used to admissibly filter edges at insertion time.
func (q *IntegratedQueue) SetThreshold(c Cost) { q.threshold = c }

// IsEmpty reports whether both heaps are drained.
func (q *IntegratedQueue) IsEmpty() bool { return len(q.vertexHeap.items) == 0 && len(q.edgeHeap.items) == 0 }

// NumEdges returns the number of queued edges.
func (q *IntegratedQueue) NumEdges() int { return len(q.edgeHeap.items) }

// NumVertices returns the number of vertices awaiting expansion.
func (q *IntegratedQueue) NumVertices() int { return len(q.vertexHeap.items) }

// ListEdges returns every queued (parent, child) pair.
func (q *IntegratedQueue) ListEdges() [][2]*Vertex {
	out := make([][2]*Vertex, 0, len(q.edgeHeap.items))
	for _, e := range q.edgeHeap.items {
		out = append(out, [2]*Vertex{e.parent, e.child})
	}
	return out
}

// ListVertices returns every vertex still awaiting expansion.
func (q *IntegratedQueue) ListVertices() []*Vertex {
	out := make([]*Vertex, len(q.vertexHeap.items))
	copy(out, q.vertexHeap.items)
	return out
}

// neighborsOf enumerates u's candidate neighborhood: tree vertices union
// sample-pool vertices within the RGG controller's current radius, or (in
// k-nearest mode) the merge-and-truncate of k from each index — the
// conservative option spec.md §9's Open Question #3 recommends over
// splitting k proportionally by index size.
func (q *IntegratedQueue) neighborsOf(u *Vertex) []*Vertex {
	q.nnCalls++
	if q.rgg.UseKNearest() {
		k := q.rgg.K()
		merged := append(q.tree.NearestK(u, k), q.pool.NearestK(u, k)...)
		sort.Slice(merged, func(i, j int) bool {
			return q.space.Distance(u.State, merged[i].State) < q.space.Distance(u.State, merged[j].State)
		})
		if len(merged) > k {
			merged = merged[:k]
		}
		return merged
	}
	r := q.rgg.Radius()
	return append(q.tree.NearestR(u, r), q.pool.NearestR(u, r)...)
}

// expandNext pops the best vertex off the vertex heap and enumerates its
// outgoing candidate edges into the edge heap, per the four admission
// criteria of spec.md §4.4.
func (q *IntegratedQueue) expandNext() {
	u := heap.Pop(&q.vertexHeap).(*Vertex)
	u.expansionEpoch = q.epoch
	for _, x := range q.neighborsOf(u) {
		if x.ID == u.ID {
			continue
		}
		if q.failureTracking && u.HasFailedChild(x) {
			continue
		}
		fThroughEdge := q.obj.Combine(q.oracle.GHat(u), q.oracle.CHat(u, x), q.oracle.HHatV(x))
		if !q.obj.BetterThan(fThroughEdge, q.threshold) {
			continue
		}
		if _, exists := q.edgesByPair[pairKey(u, x)]; exists {
			continue
		}
		if x.InTree() {
			if x.IsRoot() {
				continue
			}
			if p := x.Parent(); p != nil {
				if p.ID == u.ID {
					continue
				}
				throughU := q.obj.Combine(u.CostToCome(), q.oracle.CHat(u, x))
				if !q.obj.BetterThan(throughU, x.CostToCome()) {
					continue
				}
			}
		}
		q.insertEdge(u, x)
	}
}

func (q *IntegratedQueue) insertEdge(parent, child *Vertex) {
	e := &edgeEntry{parent: parent, child: child, key: q.oracle.EdgeKey(parent, child)}
	heap.Push(&q.edgeHeap, e)
	q.edgesByPair[pairKey(parent, child)] = e
	q.edgesByTarget[child.ID] = append(q.edgesByTarget[child.ID], e)
	if parent.edgesOut == nil {
		parent.edgesOut = make(map[uuid.UUID]*edgeEntry)
	}
	parent.edgesOut[child.ID] = e
	if child.edgesIn == nil {
		child.edgesIn = make(map[uuid.UUID]*edgeEntry)
	}
	child.edgesIn[parent.ID] = e
}

// deregisterEdge removes e from every book-keeping structure (but not the
// heap itself; callers that pulled e off the heap via heap.Pop/heap.Remove
// call this afterward, and prune_edges_to/removeEdgesInvolving call
// heap.Remove first).
func (q *IntegratedQueue) deregisterEdge(e *edgeEntry) {
	delete(q.edgesByPair, pairKey(e.parent, e.child))
	targets := q.edgesByTarget[e.child.ID]
	for i, t := range targets {
		if t == e {
			q.edgesByTarget[e.child.ID] = append(targets[:i], targets[i+1:]...)
			break
		}
	}
	delete(e.parent.edgesOut, e.child.ID)
	delete(e.child.edgesIn, e.parent.ID)
}

// removeQueuedEdge pulls e out of the edge heap and deregisters it.
func (q *IntegratedQueue) removeQueuedEdge(e *edgeEntry) {
	if e.index >= 0 && e.index < len(q.edgeHeap.items) && q.edgeHeap.items[e.index] == e {
		heap.Remove(&q.edgeHeap, e.index)
	}
	q.deregisterEdge(e)
}

// removeEdgesInvolving drops every queued edge with v as either endpoint.
func (q *IntegratedQueue) removeEdgesInvolving(v *Vertex) {
	for _, e := range v.edgesOut {
		q.removeQueuedEdge(e)
	}
	for _, e := range v.edgesIn {
		q.removeQueuedEdge(e)
	}
}

func (q *IntegratedQueue) removeFromVertexHeapIfPresent(v *Vertex) {
	if v.vHeapIndex >= 0 && v.vHeapIndex < len(q.vertexHeap.items) && q.vertexHeap.items[v.vHeapIndex] == v {
		heap.Remove(&q.vertexHeap, v.vHeapIndex)
	}
}

// PruneEdgesTo removes any queued edge ending at x whose source can no
// longer beat x's current cost — they can no longer rewire x.
func (q *IntegratedQueue) PruneEdgesTo(x *Vertex) {
	for _, e := range append([]*edgeEntry{}, q.edgesByTarget[x.ID]...) {
		throughSource := q.obj.Combine(e.parent.CostToCome(), q.oracle.CHat(e.parent, x))
		if !q.obj.BetterThan(throughSource, x.CostToCome()) {
			q.removeQueuedEdge(e)
		}
	}
}

// MarkVertexUnsorted flags v's cached edge keys as stale; the next
// Resort recomputes them and re-heapifies.
func (q *IntegratedQueue) MarkVertexUnsorted(v *Vertex) {
	q.unsorted[v.ID] = v
}

// IsSorted reports whether any unsorted marks are outstanding.
func (q *IntegratedQueue) IsSorted() bool { return len(q.unsorted) == 0 }

// ensureFrontEdge expands vertices until the best queued edge is strictly
// better than what expanding the best remaining vertex could produce, or
// the vertex heap is drained.
func (q *IntegratedQueue) ensureFrontEdge() {
	for len(q.vertexHeap.items) > 0 {
		if len(q.edgeHeap.items) > 0 {
			bestEdge := q.edgeHeap.items[0]
			bestVertex := q.vertexHeap.items[0]
			if q.obj.BetterThan(bestEdge.key.primary, q.oracle.CurrentHeuristicVertex(bestVertex)) {
				return
			}
		}
		q.expandNext()
	}
}

// FrontEdge peeks at the minimum edge, expanding vertices as needed.
func (q *IntegratedQueue) FrontEdge() (parent, child *Vertex, ok bool) {
	q.ensureFrontEdge()
	if len(q.edgeHeap.items) == 0 {
		return nil, nil, false
	}
	e := q.edgeHeap.items[0]
	return e.parent, e.child, true
}

// FrontEdgeValue peeks at the minimum edge's sort key.
func (q *IntegratedQueue) FrontEdgeValue() (edgeKey, bool) {
	q.ensureFrontEdge()
	if len(q.edgeHeap.items) == 0 {
		return edgeKey{}, false
	}
	return q.edgeHeap.items[0].key, true
}

// PopFrontEdge removes and returns the minimum edge, expanding vertices
// as needed first.
func (q *IntegratedQueue) PopFrontEdge() (parent, child *Vertex, ok bool) {
	q.ensureFrontEdge()
	if len(q.edgeHeap.items) == 0 {
		return nil, nil, false
	}
	e := heap.Pop(&q.edgeHeap).(*edgeEntry)
	q.deregisterEdge(e)
	return e.parent, e.child, true
}

// resolveVertex applies the pruning/demotion rule of spec.md §4.4/§4.7.3
// to a single vertex: destroy it if its admissible f-value can no longer
// beat the threshold, demote a tree vertex with a bad current cost (but
// still-promising f-value) back to the sample pool, or leave it be. The
// root and the goal are never removed from the tree here: the goal's tree
// cost is the solution cost itself, so it always equals the threshold.
func (q *IntegratedQueue) resolveVertex(v *Vertex) (disconnected, destroyed int) {
	fhat := q.oracle.FHat(v)
	badF := !q.obj.BetterThan(fhat, q.threshold)
	if v.InTree() {
		if v.IsRoot() || v == q.oracle.goal {
			return 0, 0
		}
		if badF {
			v.ClearParent()
			q.tree.Remove(v)
			q.removeFromVertexHeapIfPresent(v)
			q.removeEdgesInvolving(v)
			return 1, 1
		}
		if !q.obj.BetterThan(v.CostToCome(), q.threshold) {
			v.ClearParent()
			q.tree.Remove(v)
			v.costToCome = InfCost
			q.removeFromVertexHeapIfPresent(v)
			q.removeEdgesInvolving(v)
			q.pool.Add(v)
			return 1, 0
		}
		return 0, 0
	}
	if badF {
		q.pool.Remove(v)
		q.removeFromVertexHeapIfPresent(v)
		q.removeEdgesInvolving(v)
		return 0, 1
	}
	return 0, 0
}

// disconnectSubtree cuts top away from the tree and resolves every
// descendant independently by its own admissible f-value, since once
// severed from the root each descendant's tree cost is no longer
// meaningful (spec.md §4.7.3's "whose subtree was cut off" case).
func (q *IntegratedQueue) disconnectSubtree(top *Vertex) (disconnected, destroyed int) {
	nodes := top.Subtree()
	top.ClearParent()
	for _, v := range nodes {
		if v != top {
			v.costToCome = InfCost
		}
		q.tree.Remove(v)
		q.removeFromVertexHeapIfPresent(v)
		q.removeEdgesInvolving(v)
		v.children = nil
		if q.obj.BetterThan(q.oracle.FHat(v), q.threshold) {
			q.pool.Add(v)
		} else {
			destroyed++
		}
		disconnected++
	}
	return disconnected, destroyed
}

// Resort recomputes cached keys for every vertex flagged unsorted since
// the last Resort/Reset, re-heapifies, and prunes anything that no longer
// clears the threshold. Returns the number of tree vertices disconnected
// and the number of vertices/samples destroyed outright.
func (q *IntegratedQueue) Resort() (disconnected, destroyed int) {
	if len(q.unsorted) == 0 {
		return 0, 0
	}
	targets := make([]*Vertex, 0, len(q.unsorted))
	for _, v := range q.unsorted {
		targets = append(targets, v)
	}
	q.unsorted = make(map[uuid.UUID]*Vertex)

	for _, e := range q.edgeHeap.items {
		e.key = q.oracle.EdgeKey(e.parent, e.child)
	}
	heap.Init(&q.edgeHeap)
	heap.Init(&q.vertexHeap)

	for _, v := range targets {
		d, x := q.resolveVertex(v)
		disconnected += d
		destroyed += x
	}
	return disconnected, destroyed
}

// Prune performs a full sweep of every vertex currently in the tree
// (root-down, so a cut ancestor's descendants are resolved as part of its
// subtree rather than independently) and every sample in the pool,
// applying the same admissibility rule as Resort.
func (q *IntegratedQueue) Prune() (disconnected, destroyed int) {
	visited := make(map[uuid.UUID]bool)
	frontier := []*Vertex{q.tree.Root()}
	for len(frontier) > 0 {
		v := frontier[0]
		frontier = frontier[1:]
		if visited[v.ID] {
			continue
		}
		visited[v.ID] = true
		if !v.IsRoot() && !q.obj.BetterThan(q.oracle.FHat(v), q.threshold) {
			d, x := q.disconnectSubtree(v)
			disconnected += d
			destroyed += x
			continue
		}
		frontier = append(frontier, v.Children()...)
	}
	for _, s := range q.pool.List() {
		if !q.obj.BetterThan(q.oracle.FHat(s), q.threshold) {
			q.pool.Remove(s)
			q.removeFromVertexHeapIfPresent(s)
			q.removeEdgesInvolving(s)
			destroyed++
		}
	}
	return disconnected, destroyed
}
