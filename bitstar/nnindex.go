package bitstar

import "sort"

// bruteForceIndex is the default VertexIndex: a linear scan over a slice,
// grounded on the teacher's own brute-force nearestNeighbor/
// kNearestNeighbors (motionplan/nearestNeighbor.go) — the teacher does not
// build a kd-tree for this concern either, so neither does this default.
// Callers needing sublinear queries at scale supply their own
// VertexIndexFactory.
type bruteForceIndex struct {
	space   StateSpace
	byID    map[string]*Vertex
	vs      []*Vertex
}

// NewBruteForceIndex is the default VertexIndexFactory: it builds an empty
// brute-force index over space.
func NewBruteForceIndex(space StateSpace) VertexIndex {
	return &bruteForceIndex{space: space, byID: make(map[string]*Vertex)}
}

func (idx *bruteForceIndex) Add(v *Vertex) {
	if _, ok := idx.byID[v.ID.String()]; ok {
		return
	}
	idx.byID[v.ID.String()] = v
	idx.vs = append(idx.vs, v)
}

func (idx *bruteForceIndex) Remove(v *Vertex) {
	key := v.ID.String()
	if _, ok := idx.byID[key]; !ok {
		return
	}
	delete(idx.byID, key)
	for i, u := range idx.vs {
		if u.ID == v.ID {
			idx.vs = append(idx.vs[:i], idx.vs[i+1:]...)
			break
		}
	}
}

func (idx *bruteForceIndex) Clear() {
	idx.byID = make(map[string]*Vertex)
	idx.vs = nil
}

func (idx *bruteForceIndex) List() []*Vertex {
	out := make([]*Vertex, len(idx.vs))
	copy(out, idx.vs)
	return out
}

func (idx *bruteForceIndex) Size() int { return len(idx.vs) }

type distancedVertex struct {
	v    *Vertex
	dist float64
}

func (idx *bruteForceIndex) sortedByDistance(q *Vertex) []distancedVertex {
	out := make([]distancedVertex, 0, len(idx.vs))
	for _, v := range idx.vs {
		if v.ID == q.ID {
			continue
		}
		out = append(out, distancedVertex{v: v, dist: idx.space.Distance(q.State, v.State)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].dist < out[j].dist })
	return out
}

// NearestR returns every vertex within r of q, excluding q itself.
func (idx *bruteForceIndex) NearestR(q *Vertex, r float64) []*Vertex {
	var out []*Vertex
	for _, v := range idx.vs {
		if v.ID == q.ID {
			continue
		}
		if idx.space.Distance(q.State, v.State) <= r {
			out = append(out, v)
		}
	}
	return out
}

// NearestK returns the k closest vertices to q, excluding q itself.
func (idx *bruteForceIndex) NearestK(q *Vertex, k int) []*Vertex {
	sorted := idx.sortedByDistance(q)
	if k > len(sorted) {
		k = len(sorted)
	}
	out := make([]*Vertex, k)
	for i := 0; i < k; i++ {
		out[i] = sorted[i].v
	}
	return out
}
