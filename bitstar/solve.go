package bitstar

import (
	"context"
	"fmt"

	"go.viam.com/utils"
)

// Result is the outcome of a Solve call: the exit status of spec.md §6
// plus enough state to report the final path and progress.
type Result struct {
	SolutionFound bool
	Approximate   bool // always false; approximate-solution reporting is a non-goal (spec.md §1)
	BestCost      Cost
	Path          []State
	Progress      Progress
	Err           error
}

// Solve owns one Planner end to end: it runs the main loop on a background
// goroutine (guarded by utils.PanicCapturingGo, exactly as the teacher's
// rrtStarConnectMotionPlanner.Plan/planRunner split guards its own search
// goroutine) and blocks the caller on a result channel while remaining
// independently cancellable via ctx. A panic inside the search (e.g. in a
// user-supplied IsValid/CheckMotion) is recovered and returned as an error.
//
// term, if non-nil, is polled the way spec.md §5/§6 describes; either ctx
// cancellation or term returning true stops the search at the next
// safepoint.
func Solve(ctx context.Context, cfg PlannerConfig, term TerminationFunc) (*Result, error) {
	planner, err := NewPlanner(cfg)
	if err != nil {
		return nil, err
	}

	resultChan := make(chan *Result, 1)
	utils.PanicCapturingGo(func() {
		defer func() {
			if r := recover(); r != nil {
				resultChan <- &Result{Err: fmt.Errorf("bitstar: planner panicked: %v", r)}
			}
		}()
		solutionFound, runErr := planner.Run(ctx, term)
		resultChan <- &Result{
			SolutionFound: solutionFound,
			BestCost:      planner.BestCost(),
			Path:          planner.BestPath(),
			Progress:      planner.Progress(),
			Err:           runErr,
		}
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-resultChan:
		return res, res.Err
	}
}
