// Package environment outlines the interfaces and structs needed to
// implement concrete grid environments
package environment

import (
	"fmt"

	"github.com/samuelfneumann/gemgrid/timestep"
)

// Position is a (row, column) cell coordinate in a grid environment
type Position struct {
	Row int
	Col int
}

// String returns the Position as a string
func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

// Starter implements a distribution of starting states and samples
// starting states for environments
type Starter interface {
	Start() Position
}

// Task implements the reward scheme and episode termination for taking
// actions in some environment. Rewards are a function of the cell that
// is entered.
type Task interface {
	GetReward(next Position) float64
	AtGoal(p Position) bool
	Min() float64
	Max() float64
}

// Environment implements a simulated environment, which includes a Task
// to complete
type Environment interface {
	Task
	Starter
	Reset() timestep.TimeStep // Resets between episodes
	Step(action Action) (timestep.TimeStep, bool)
	Position() Position
	NumStates() int
	Discount() float64
}
