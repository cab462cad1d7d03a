package bitstar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBruteForceIndexAddRemoveSize(t *testing.T) {
	space := &lineSpace{lo: 0, hi: 10}
	idx := NewBruteForceIndex(space)
	a := NewVertex(1.0)
	b := NewVertex(2.0)
	idx.Add(a)
	idx.Add(b)
	require.Equal(t, 2, idx.Size())

	idx.Remove(a)
	assert.Equal(t, 1, idx.Size())
	assert.Equal(t, []*Vertex{b}, idx.List())
}

func TestBruteForceIndexNearestR(t *testing.T) {
	space := &lineSpace{lo: 0, hi: 10}
	idx := NewBruteForceIndex(space)
	q := NewVertex(0.0)
	near := NewVertex(1.0)
	far := NewVertex(9.0)
	idx.Add(q)
	idx.Add(near)
	idx.Add(far)

	got := idx.NearestR(q, 2.0)
	require.Len(t, got, 1)
	assert.Equal(t, near.ID, got[0].ID)
}

func TestBruteForceIndexNearestK(t *testing.T) {
	space := &lineSpace{lo: 0, hi: 10}
	idx := NewBruteForceIndex(space)
	q := NewVertex(0.0)
	v1 := NewVertex(1.0)
	v2 := NewVertex(2.0)
	v3 := NewVertex(9.0)
	idx.Add(q)
	idx.Add(v1)
	idx.Add(v2)
	idx.Add(v3)

	got := idx.NearestK(q, 2)
	require.Len(t, got, 2)
	assert.Equal(t, v1.ID, got[0].ID)
	assert.Equal(t, v2.ID, got[1].ID)
}

func TestBruteForceIndexClear(t *testing.T) {
	space := &lineSpace{lo: 0, hi: 10}
	idx := NewBruteForceIndex(space)
	idx.Add(NewVertex(1.0))
	idx.Clear()
	assert.Equal(t, 0, idx.Size())
}
