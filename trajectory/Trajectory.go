// Package trajectory records the path an agent takes through an episode,
// extracts greedy paths from learned action values, and keeps an
// append-only history of saved paths
package trajectory

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/samuelfneumann/gemgrid/environment"
	"github.com/samuelfneumann/gemgrid/utils/intutils"
)

// PathStep is a single recorded step: the position the agent moved
// from, the action it chose, and the reward it received
type PathStep struct {
	From   environment.Position
	Action environment.Action
	Reward float64
}

func (p PathStep) String() string {
	return fmt.Sprintf("%v %v %.2f", p.From, p.Action, p.Reward)
}

// Trajectory is the ordered sequence of steps of the in-progress episode
type Trajectory struct {
	steps []PathStep
}

// New returns a new, empty Trajectory
func New() *Trajectory {
	return &Trajectory{}
}

// Record appends step to the trajectory
func (t *Trajectory) Record(step PathStep) {
	t.steps = append(t.steps, step)
}

// Clear removes every recorded step
func (t *Trajectory) Clear() {
	t.steps = nil
}

// Len returns the number of recorded steps
func (t *Trajectory) Len() int {
	return len(t.steps)
}

// Steps returns a copy of the recorded steps
func (t *Trajectory) Steps() []PathStep {
	return Copy(t.steps)
}

// Recent returns a copy of the at most n most recent steps. If n <= 0,
// every step is returned.
func (t *Trajectory) Recent(n int) []PathStep {
	if n <= 0 {
		return t.Steps()
	}
	return Copy(t.steps[len(t.steps)-intutils.Min(n, len(t.steps)):])
}

// Total returns the sum of the rewards of every recorded step
func (t *Trajectory) Total() float64 {
	return TotalReward(t.steps)
}

// TotalReward returns the sum of the rewards of steps
func TotalReward(steps []PathStep) float64 {
	rewards := make([]float64, len(steps))
	for i, step := range steps {
		rewards[i] = step.Reward
	}
	return floats.Sum(rewards)
}

// Copy returns a copy of steps. A nil slice is returned for no steps.
func Copy(steps []PathStep) []PathStep {
	if len(steps) == 0 {
		return nil
	}
	copied := make([]PathStep, len(steps))
	copy(copied, steps)
	return copied
}
