package gridworld

import (
	"gonum.org/v1/gonum/floats"

	"github.com/samuelfneumann/gemgrid/environment"
)

// GemTask represents the task of reaching the gem while avoiding the
// skulls in a Grid. Every cell entered costs a small living cost, which
// biases learned policies toward shorter paths.
type GemTask struct {
	grid *Grid
}

// NewGemTask returns a new GemTask on grid g
func NewGemTask(g *Grid) *GemTask {
	return &GemTask{g}
}

// GetReward returns the reward for entering cell next
func (g *GemTask) GetReward(next environment.Position) float64 {
	return g.grid.Reward(next)
}

// AtGoal returns whether p is a terminal cell, either the gem or a skull
func (g *GemTask) AtGoal(p environment.Position) bool {
	return g.grid.IsTerminal(p)
}

// Min returns the minimum reward attainable in the Task
func (g *GemTask) Min() float64 {
	return floats.Min([]float64{GemReward, SkullReward, StepReward})
}

// Max returns the maximum reward attainable in the Task
func (g *GemTask) Max() float64 {
	return floats.Max([]float64{GemReward, SkullReward, StepReward})
}
