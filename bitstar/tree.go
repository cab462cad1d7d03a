package bitstar

// Tree (C6) holds connected vertices, backed by a VertexIndex for spatial
// queries, plus the root designation spec.md §4.6 adds to the base
// VertexIndex API.
type Tree struct {
	index VertexIndex
	root  *Vertex
}

// NewTree wraps index as a tree rooted at root. root is added immediately.
func NewTree(index VertexIndex, root *Vertex) *Tree {
	t := &Tree{index: index, root: root}
	_ = t.Add(root)
	return t
}

// Root returns the tree's start vertex.
func (t *Tree) Root() *Vertex { return t.root }

// Add inserts v into the tree. v must already be connected
// (v.HasParent() or v.IsRoot()); the invariant-violation error taxonomy
// of spec.md §7 applies to callers that violate this.
func (t *Tree) Add(v *Vertex) error {
	if !v.HasParent() {
		return ErrUnconnectedVertex
	}
	t.index.Add(v)
	v.setInTree(true)
	return nil
}

// Remove drops v from the tree (used on rewire-away or prune).
func (t *Tree) Remove(v *Vertex) {
	t.index.Remove(v)
	v.setInTree(false)
}

// Clear empties the tree index (the root vertex object itself is
// untouched; callers re-add it via Add/NewTree semantics as needed).
func (t *Tree) Clear() { t.index.Clear() }

// List returns every vertex currently in the tree.
func (t *Tree) List() []*Vertex { return t.index.List() }

// Size returns the number of vertices in the tree.
func (t *Tree) Size() int { return t.index.Size() }

// NearestR returns every tree vertex within r of q.
func (t *Tree) NearestR(q *Vertex, r float64) []*Vertex { return t.index.NearestR(q, r) }

// NearestK returns the k closest tree vertices to q.
func (t *Tree) NearestK(q *Vertex, k int) []*Vertex { return t.index.NearestK(q, k) }
