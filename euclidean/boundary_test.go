package euclidean_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearpathrobotics/batch-informed-trees/bitstar"
	"github.com/clearpathrobotics/batch-informed-trees/euclidean"
)

// These tests reproduce the six literal boundary scenarios (state space =
// R^2 unit square, path-length objective, Euclidean distance) against this
// module's reference euclidean collaborators.

func solveWithBudget(t *testing.T, space *euclidean.Space, start, goal euclidean.Point, opts *bitstar.Options, maxIterations int) *bitstar.Result {
	t.Helper()
	obj := euclidean.NewPathLengthObjective(space, 11, 0)
	iterations := 0
	term := func() bool {
		iterations++
		return iterations > maxIterations
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	res, err := bitstar.Solve(ctx, bitstar.PlannerConfig{
		Start: start, Goal: goal, Space: space, Objective: obj, Options: opts,
	}, term)
	require.NoError(t, err)
	return res
}

func TestBoundaryStartEqualsGoal(t *testing.T) {
	space := euclidean.NewSpace2(0, 0, 1, 1, euclidean.AlwaysValid, 0.02)
	p := euclidean.NewPoint2(0.5, 0.5)
	res := solveWithBudget(t, space, p, p, bitstar.NewOptions(), 10)
	require.True(t, res.SolutionFound)
	assert.Equal(t, bitstar.Cost(0), res.BestCost)
	require.Len(t, res.Path, 1)
	assert.Equal(t, p, res.Path[0])
}

func TestBoundaryDirectLineConvergesToSqrt2(t *testing.T) {
	space := euclidean.NewSpace2(0, 0, 1, 1, euclidean.AlwaysValid, 0.02)
	opts := bitstar.NewOptions()
	opts.SamplesPerBatch = 50
	res := solveWithBudget(t, space, euclidean.NewPoint2(0, 0), euclidean.NewPoint2(1, 1), opts, 5000)
	require.True(t, res.SolutionFound)
	assert.InDelta(t, math.Sqrt2, float64(res.BestCost), 0.05*math.Sqrt2)
}

func TestBoundarySingleWallObstacleForcesDetour(t *testing.T) {
	space := euclidean.NewSpace2(0, 0, 1, 1, euclidean.WallObstacle, 0.02)
	opts := bitstar.NewOptions()
	opts.SamplesPerBatch = 50
	res := solveWithBudget(t, space, euclidean.NewPoint2(0, 0), euclidean.NewPoint2(1, 0), opts, 8000)
	require.True(t, res.SolutionFound)
	expected := 2*math.Hypot(0.8, 0.5) + 0.2
	assert.Greater(t, float64(res.BestCost), 1.0)
	assert.InDelta(t, expected, float64(res.BestCost), 0.05*expected)
}

func TestBoundaryPruningKeepsOnlyPromisingSamples(t *testing.T) {
	space := euclidean.NewSpace2(0, 0, 1, 1, euclidean.AlwaysValid, 0.02)
	obj := euclidean.NewPathLengthObjective(space, 11, 0)
	opts := bitstar.NewOptions()
	opts.UseGraphPruning = true
	opts.PruneFraction = 0.01
	opts.SamplesPerBatch = 50

	planner, err := bitstar.NewPlanner(bitstar.PlannerConfig{
		Start: euclidean.NewPoint2(0, 0), Goal: euclidean.NewPoint2(1, 1), Space: space, Objective: obj, Options: opts,
	})
	require.NoError(t, err)

	ctx := context.Background()
	term := func() bool { return false }
	before := -1
	for i := 0; i < 4000; i++ {
		prevCost := planner.BestCost()
		more, stepErr := planner.Step(ctx, term)
		require.NoError(t, stepErr)
		if planner.Progress().Prunes > 0 && before == -1 {
			before = planner.Progress().FreeStates
		}
		_ = prevCost
		if !more {
			break
		}
	}
	if before >= 0 {
		assert.GreaterOrEqual(t, before, planner.Progress().FreeStates)
	}
}

func TestBoundaryStrictVsNonStrictConvergeToSameOptimum(t *testing.T) {
	space := euclidean.NewSpace2(0, 0, 1, 1, euclidean.AlwaysValid, 0.02)

	nonStrict := bitstar.NewOptions()
	nonStrict.Seed = 99
	nonStrict.SamplesPerBatch = 30
	resA := solveWithBudget(t, space, euclidean.NewPoint2(0, 0), euclidean.NewPoint2(1, 1), nonStrict, 4000)

	strict := bitstar.NewOptions()
	strict.Seed = 99
	strict.SamplesPerBatch = 30
	strict.UseStrictQueueOrdering = true
	resB := solveWithBudget(t, space, euclidean.NewPoint2(0, 0), euclidean.NewPoint2(1, 1), strict, 4000)

	require.True(t, resA.SolutionFound)
	require.True(t, resB.SolutionFound)
	assert.InDelta(t, float64(resA.BestCost), float64(resB.BestCost), 0.1)
}

func TestBoundaryFailureTrackingNeverDoubleChecksAnEdge(t *testing.T) {
	space := euclidean.NewSpace2(0, 0, 1, 1, euclidean.WallObstacle, 0.02)
	obj := euclidean.NewPathLengthObjective(space, 11, 0)
	opts := bitstar.NewOptions()
	opts.UseEdgeFailureTracking = true
	opts.SamplesPerBatch = 30

	planner, err := bitstar.NewPlanner(bitstar.PlannerConfig{
		Start: euclidean.NewPoint2(0, 0), Goal: euclidean.NewPoint2(1, 0), Space: space, Objective: obj, Options: opts,
	})
	require.NoError(t, err)

	ctx := context.Background()
	term := func() bool { return false }
	for i := 0; i < 1000; i++ {
		more, stepErr := planner.Step(ctx, term)
		require.NoError(t, stepErr)
		if !more {
			break
		}
	}
	// Edge failure tracking means a colliding (u,x) pair is memoized on u
	// and skipped by later expansions in the same batch; this test mainly
	// guards that the run completes and records collision checks without
	// error, the behavioral guarantee itself is enforced by
	// queue.go's expandNext `u.HasFailedChild(x)` skip, unit-tested
	// directly in TestQueueFailureTrackingSkipsMarkedChild.
	assert.Greater(t, planner.Progress().EdgeCollisionChecks, uint64(0))
}
