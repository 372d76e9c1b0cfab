// Package gridworld implements the fixed 5x5 gem and skull gridworld
package gridworld

import (
	"fmt"
	"os"

	"github.com/samuelfneumann/gemgrid/environment"
	"github.com/samuelfneumann/gemgrid/timestep"
	"github.com/samuelfneumann/gemgrid/utils/intutils"
)

// GridWorld represents a gridworld environment
//
// The GridWorld tracks the current agent position on a fixed Grid. The
// transition and reward dynamics are pure functions of the Grid; the
// GridWorld only adds the notion of a current position and episode
// step counting.
type GridWorld struct {
	environment.Task
	environment.Starter
	grid        *Grid
	position    environment.Position
	discount    float64
	currentStep timestep.TimeStep
}

// New creates a new GridWorld on grid g with task t, starting state
// distribution s, and discount factor d. The GridWorld is returned
// reset, along with its first TimeStep.
func New(g *Grid, t environment.Task, s environment.Starter,
	d float64) (*GridWorld, timestep.TimeStep) {
	world := &GridWorld{Task: t, Starter: s, grid: g, discount: d}

	return world, world.Reset()
}

// NewDefault creates a GridWorld on a fresh grid with the GemTask and
// a start state of StartPosition
func NewDefault(d float64) (*GridWorld, timestep.TimeStep) {
	g := NewGrid()
	s, err := NewSingleStart(StartPosition.Row, StartPosition.Col)
	if err != nil {
		panic(fmt.Sprintf("newDefault: %v", err))
	}

	return New(g, NewGemTask(g), s, d)
}

// Reset resets the agent to the start position and returns the first
// TimeStep of a new episode
func (g *GridWorld) Reset() timestep.TimeStep {
	g.position = g.Start()

	startStep := timestep.New(timestep.First, 0, g.discount,
		StateID(g.position), 0)
	g.currentStep = startStep
	return startStep
}

// Step takes one action in the environment, returning the resulting
// TimeStep and whether the TimeStep is the last in the episode
func (g *GridWorld) Step(action environment.Action) (timestep.TimeStep, bool) {
	next := Transition(g.position, action)
	g.position = next

	// Get information to pass back
	reward := g.GetReward(next)
	number := g.currentStep.Number + 1
	stepType := timestep.Mid

	// Check if this transition is to a terminal cell
	if g.AtGoal(next) {
		stepType = timestep.Last
	}

	step := timestep.New(stepType, reward, g.discount, StateID(next), number)
	g.currentStep = step

	return step, stepType == timestep.Last
}

// Position returns the current agent position
func (g *GridWorld) Position() environment.Position {
	return g.position
}

// SetPosition moves the agent to p without taking a step. The position
// is clamped to the grid.
func (g *GridWorld) SetPosition(p environment.Position) {
	if !InBounds(p) {
		fmt.Fprintf(os.Stderr, "Warning: position %v outside of the grid "+
			"was clamped\n", p)
	}
	g.position = clamp(p)
}

// Grid returns the underlying grid
func (g *GridWorld) Grid() *Grid {
	return g.grid
}

// NumStates returns the number of states in the environment
func (g *GridWorld) NumStates() int {
	return NumStates
}

// Discount returns the discount factor of each TimeStep
func (g *GridWorld) Discount() float64 {
	return g.discount
}

// CurrentTimeStep returns the most recent TimeStep
func (g *GridWorld) CurrentTimeStep() timestep.TimeStep {
	return g.currentStep
}

func (g *GridWorld) String() string {
	str := "GridWorld | At: %v  |  Goal: %v  |  Bounds: (%d, %d)"
	return fmt.Sprintf(str, g.position, GemPosition, GridSize, GridSize)
}

func clamp(p environment.Position) environment.Position {
	return environment.Position{
		Row: intutils.Clip(p.Row, 0, GridSize-1),
		Col: intutils.Clip(p.Col, 0, GridSize-1),
	}
}
