package bitstar

import "github.com/google/uuid"

// Vertex is a node in the search tree (C1). It is shared jointly between
// whichever VertexIndex currently holds it (tree XOR sample pool, per the
// partition invariant) and the IntegratedQueue's back-references; no single
// holder owns it outright.
//
// parent is a non-owning back-reference; children is the tree's owning
// pointer to the subtree below v. A Vertex with parent == nil and
// isRoot == false is a Sample (spec.md §3): disconnected, cost_to_come
// is InfCost.
type Vertex struct {
	ID    uuid.UUID
	State State

	parent             *Vertex
	edgeCostFromParent Cost
	children           map[uuid.UUID]*Vertex
	costToCome         Cost
	isRoot             bool

	// failedChildren memoizes edges from this vertex that were proven
	// invalid (collision or heuristically dominated), keyed by the
	// candidate child's identity. It persists across batches and is
	// cleared whenever this vertex itself is rewired (spec.md §4.1).
	failedChildren map[uuid.UUID]struct{}

	// expansionEpoch is bumped to the queue's current epoch when this
	// vertex is expanded; a mismatch against the queue's epoch means the
	// vertex is "new" and needs (re-)expansion this batch.
	expansionEpoch uint64

	// inTree records which side of the pool/tree partition (spec.md §3
	// invariant) v currently sits on; mutated only by Tree/SamplePool.
	inTree bool

	// queue book-keeping, mutated only by *IntegratedQueue.
	vHeapIndex int
	edgesOut   map[uuid.UUID]*edgeEntry
	edgesIn    map[uuid.UUID]*edgeEntry
}

// NewVertex allocates a disconnected Vertex (a Sample) over state.
func NewVertex(state State) *Vertex {
	return &Vertex{
		ID:                 uuid.New(),
		State:              state,
		costToCome:         InfCost,
		edgeCostFromParent: InfCost,
		vHeapIndex:         -1,
	}
}

// NewRootVertex allocates the tree's root: cost_to_come 0, no parent.
func NewRootVertex(state State) *Vertex {
	v := NewVertex(state)
	v.isRoot = true
	v.costToCome = 0
	return v
}

// Parent returns v's parent, or nil if v is the root or a disconnected sample.
func (v *Vertex) Parent() *Vertex { return v.parent }

// IsRoot reports whether v is the tree's start vertex.
func (v *Vertex) IsRoot() bool { return v.isRoot }

// HasParent reports whether v is connected (root counts as connected via
// the `has_parent() or is_root()` rule in spec.md §4.6).
func (v *Vertex) HasParent() bool { return v.parent != nil || v.isRoot }

// CostToCome returns g_t(v), InfCost if v is disconnected.
func (v *Vertex) CostToCome() Cost { return v.costToCome }

// Children returns v's child vertices in the tree. The returned slice is a
// fresh copy; mutating it does not affect v.
func (v *Vertex) Children() []*Vertex {
	out := make([]*Vertex, 0, len(v.children))
	for _, c := range v.children {
		out = append(out, c)
	}
	return out
}

// AddChild records c as a tree-child of v.
func (v *Vertex) AddChild(c *Vertex) {
	if v.children == nil {
		v.children = make(map[uuid.UUID]*Vertex)
	}
	v.children[c.ID] = c
}

// RemoveChild drops c from v's child set, if present.
func (v *Vertex) RemoveChild(c *Vertex) {
	delete(v.children, c.ID)
}

// SetParent attaches v to p with the given true edge cost. When cascade is
// true, v's cost_to_come and its entire subtree's costs are recomputed
// depth-first (used on extend/rewire, where the subtree must reflect the
// new path-through-p cost immediately). Rewiring v clears its failure
// memory, since which candidate children are valid from v does not depend
// on v's own parent.
func (v *Vertex) SetParent(p *Vertex, edgeCost Cost, cascade bool, obj Objective) {
	v.parent = p
	v.edgeCostFromParent = edgeCost
	v.failedChildren = nil
	if cascade {
		v.UpdateCostDescending(obj)
	} else {
		v.costToCome = obj.Combine(p.costToCome, edgeCost)
	}
}

// ClearParent detaches v from its current parent and resets the cached
// edge cost to InfCost, leaving v's cost_to_come untouched (the caller is
// expected to either discard v or call
// SetParent immediately after, per the rewire sequence in spec.md §4.7.2).
func (v *Vertex) ClearParent() {
	if v.parent != nil {
		v.parent.RemoveChild(v)
	}
	v.parent = nil
	v.edgeCostFromParent = InfCost
}

// UpdateCostDescending recomputes v's cost_to_come from its parent's
// current cost and the cached edge cost, then propagates the same
// recomputation depth-first through every descendant. Called after a
// rewire or after an ancestor's cost changes.
func (v *Vertex) UpdateCostDescending(obj Objective) {
	if v.isRoot {
		v.costToCome = 0
	} else if v.parent != nil {
		v.costToCome = obj.Combine(v.parent.costToCome, v.edgeCostFromParent)
	} else {
		v.costToCome = InfCost
	}
	for _, c := range v.children {
		c.UpdateCostDescending(obj)
	}
}

// MarkFailedChild records that the edge (v, c) was proven invalid
// (collision, or dominated by the current best cost), so later expansions
// of v skip c until v is next rewired.
func (v *Vertex) MarkFailedChild(c *Vertex) {
	if v.failedChildren == nil {
		v.failedChildren = make(map[uuid.UUID]struct{})
	}
	v.failedChildren[c.ID] = struct{}{}
}

// HasFailedChild reports whether (v, c) was already proven invalid.
func (v *Vertex) HasFailedChild(c *Vertex) bool {
	_, ok := v.failedChildren[c.ID]
	return ok
}

// InTree reports whether v currently sits in the tree rather than the
// sample pool.
func (v *Vertex) InTree() bool { return v.inTree }

// setInTree is called only by Tree.Add/Remove and SamplePool.Add to
// keep the pool/tree partition invariant visible on the vertex itself.
func (v *Vertex) setInTree(b bool) { v.inTree = b }

// Subtree returns v and every descendant, pre-order.
func (v *Vertex) Subtree() []*Vertex {
	out := []*Vertex{v}
	for _, c := range v.children {
		out = append(out, c.Subtree()...)
	}
	return out
}
