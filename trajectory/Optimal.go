package trajectory

import (
	"github.com/samuelfneumann/gemgrid/agent"
	"github.com/samuelfneumann/gemgrid/agent/policy"
	"github.com/samuelfneumann/gemgrid/environment"
	"github.com/samuelfneumann/gemgrid/environment/gridworld"
)

// MaxPathSteps bounds the number of greedy steps taken when extracting
// an optimal path, so a policy cycle cannot loop forever
const MaxPathSteps int = 50

// ExtractOptimalPath follows the greedy policy of values from the start
// cell of grid and returns the positions visited.
//
// The walk stops on a terminal cell, which is included as the last
// position, or on a state that values has no information for. If
// MaxPathSteps greedy steps are taken without reaching a terminal cell,
// the path is returned as is and does not end on a terminal cell; use
// Complete to tell the two apart. The path never has more than
// MaxPathSteps+1 positions.
//
// values is only read. Callers which keep learning while the path is in
// use should pass a snapshot.
func ExtractOptimalPath(grid *gridworld.Grid,
	values agent.ActionValuer) []environment.Position {
	path := make([]environment.Position, 0, MaxPathSteps+1)
	current := gridworld.StartPosition

	for i := 0; i < MaxPathSteps; i++ {
		if grid.IsTerminal(current) {
			return append(path, current)
		}
		path = append(path, current)

		state := gridworld.StateID(current)
		if !values.Materialized(state) {
			return path
		}

		action := policy.BestAction(values.ActionValues(state))
		current = gridworld.Transition(current, action)
	}

	return path
}

// Complete returns whether path ends on a terminal cell of grid
func Complete(grid *gridworld.Grid, path []environment.Position) bool {
	return len(path) > 0 && grid.IsTerminal(path[len(path)-1])
}
