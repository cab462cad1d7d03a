package bitstar

// SamplePool (C5) holds disconnected candidate vertices (parent == nil,
// cost_to_come == InfCost) awaiting consideration, backed by a VertexIndex
// for spatial queries.
type SamplePool struct {
	index VertexIndex
}

// NewSamplePool wraps index as a sample pool.
func NewSamplePool(index VertexIndex) *SamplePool {
	return &SamplePool{index: index}
}

// Add inserts a sample. v must be disconnected (no parent, not root).
func (p *SamplePool) Add(v *Vertex) {
	p.index.Add(v)
	v.setInTree(false)
}

// Remove drops a sample, typically because it was connected into the tree
// or pruned.
func (p *SamplePool) Remove(v *Vertex) { p.index.Remove(v) }

// Clear empties the pool.
func (p *SamplePool) Clear() { p.index.Clear() }

// List returns every sample currently in the pool.
func (p *SamplePool) List() []*Vertex { return p.index.List() }

// Size returns the number of samples in the pool.
func (p *SamplePool) Size() int { return p.index.Size() }

// NearestR returns every sample within r of q.
func (p *SamplePool) NearestR(q *Vertex, r float64) []*Vertex { return p.index.NearestR(q, r) }

// NearestK returns the k closest samples to q.
func (p *SamplePool) NearestK(q *Vertex, k int) []*Vertex { return p.index.NearestK(q, k) }
