package euclidean

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceIsEuclideanTwoNorm(t *testing.T) {
	space := NewSpace2(0, 0, 1, 1, nil, 0.01)
	d := space.Distance(NewPoint2(0, 0), NewPoint2(3, 4))
	assert.InDelta(t, 5.0, d, 1e-9)
}

func TestAlwaysValidAcceptsEverything(t *testing.T) {
	space := NewSpace2(0, 0, 1, 1, AlwaysValid, 0.01)
	assert.True(t, space.IsValid(NewPoint2(0.5, 0.5)))
}

func TestWallObstacleRejectsBandBelowY08(t *testing.T) {
	assert.False(t, WallObstacle(NewPoint2(0.5, 0.5)))
	assert.True(t, WallObstacle(NewPoint2(0.5, 0.9)))
	assert.True(t, WallObstacle(NewPoint2(0.2, 0.5)))
}

func TestIsValidRejectsOutOfBounds(t *testing.T) {
	space := NewSpace2(0, 0, 1, 1, nil, 0.01)
	assert.False(t, space.IsValid(NewPoint2(-0.1, 0.5)))
	assert.False(t, space.IsValid(NewPoint2(0.5, 1.1)))
}

func TestCheckMotionDetectsObstacleOnSegment(t *testing.T) {
	space := NewSpace2(0, 0, 1, 1, WallObstacle, 0.01)
	// A straight horizontal line through the wall band at y=0.5 must fail.
	assert.False(t, space.CheckMotion(NewPoint2(0.1, 0.5), NewPoint2(0.9, 0.5)))
	// A path that stays above y=0.8 clears the wall.
	assert.True(t, space.CheckMotion(NewPoint2(0.1, 0.9), NewPoint2(0.9, 0.9)))
}

func TestCheckMotionZeroLengthDegeneratesToIsValid(t *testing.T) {
	space := NewSpace2(0, 0, 1, 1, WallObstacle, 0.01)
	assert.True(t, space.CheckMotion(NewPoint2(0.5, 0.9), NewPoint2(0.5, 0.9)))
	assert.False(t, space.CheckMotion(NewPoint2(0.5, 0.5), NewPoint2(0.5, 0.5)))
}

func TestMeasureIsBoundingBoxArea(t *testing.T) {
	space := NewSpace2(0, 0, 2, 3, nil, 0.01)
	assert.InDelta(t, 6.0, space.Measure(), 1e-9)
}

func TestNewSpace3Dimension(t *testing.T) {
	space := NewSpace3(NewPoint3(0, 0, 0), NewPoint3(1, 1, 1), nil, 0.01)
	assert.Equal(t, 3, space.Dimension())
	assert.InDelta(t, 1.0, space.Measure(), 1e-9)
}
