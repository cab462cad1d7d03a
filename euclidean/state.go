// Package euclidean provides a reference StateSpace, Objective and Sampler
// over R^n (n in {2,3}) with Euclidean distance
// and a path-length objective — the state space every boundary scenario
// in spec.md §8 is written against. It is an ordinary consumer of
// package bitstar's public interfaces, never special-cased by the core.
package euclidean

import (
	"github.com/golang/geo/r3"
)

// Point is a state in R^n, backed by r3.Vector (following the teacher's
// own pervasive use of r3.Vector for 3D points across motionplan and
// spatialmath). For a 2D Space, Z is always 0 and ignored by Distance.
type Point = r3.Vector

// NewPoint2 builds a 2D point.
func NewPoint2(x, y float64) Point { return Point{X: x, Y: y, Z: 0} }

// NewPoint3 builds a 3D point.
func NewPoint3(x, y, z float64) Point { return Point{X: x, Y: y, Z: z} }
