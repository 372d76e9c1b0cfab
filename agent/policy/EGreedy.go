// Package policy implements policies over tabular action values
package policy

import (
	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/gemgrid/agent"
	"github.com/samuelfneumann/gemgrid/environment"
	"github.com/samuelfneumann/gemgrid/utils/floatutils"
)

// Source is a source of pseudo-random numbers used for exploration.
// *rand.Rand from golang.org/x/exp/rand satisfies Source.
type Source interface {
	Float64() float64
	Intn(n int) int
}

// NewSource returns a seeded Source
func NewSource(seed uint64) Source {
	return rand.New(rand.NewSource(seed))
}

// EGreedy implements an ε-greedy policy over a table of action values
type EGreedy struct {
	values  agent.ActionValuer
	epsilon float64
	rng     Source
}

// NewEGreedy constructs a new EGreedy policy, where e=epsilon is the
// probability with which a random action is selected. The policy reads
// from, and materializes states in, values.
func NewEGreedy(e float64, values agent.ActionValuer, rng Source) *EGreedy {
	return &EGreedy{values, e, rng}
}

// SelectAction selects an action from an ε-greedy policy
func (p *EGreedy) SelectAction(state int) environment.Action {
	return SelectAction(state, p.values, p.epsilon, p.rng)
}

// Epsilon returns the current exploration rate
func (p *EGreedy) Epsilon() float64 {
	return p.epsilon
}

// SetEpsilon sets the exploration rate, clipped to [0, 1]
func (p *EGreedy) SetEpsilon(e float64) {
	p.epsilon = floatutils.Clip(e, 0, 1)
}

// SelectAction chooses an action in state from values. With probability
// epsilon an action is drawn uniformly at random, otherwise the first
// maximal action in environment.Actions order is chosen.
//
// The state is materialized in values before it is read.
func SelectAction(state int, values agent.ActionValuer, epsilon float64,
	rng Source) environment.Action {
	values.EnsureState(state)

	if rng.Float64() < epsilon {
		return environment.Actions[rng.Intn(environment.NumActions)]
	}
	return BestAction(values.ActionValues(state))
}

// BestAction returns the first action with maximal value, scanning
// actions in environment.Actions order
func BestAction(actionValues []float64) environment.Action {
	if len(actionValues) != environment.NumActions {
		panic("bestAction: need one value per action")
	}
	return environment.Actions[floatutils.ArgMax(actionValues)]
}
