// Package qlearning implements the tabular Q-Learning algorithm.
//
// Action values are stored densely in a QTable with one row per state.
// The behaviour policy is ε-greedy with respect to the table, and ε is
// decayed once per completed episode. The target policy is the greedy
// policy, which makes the backup the one step max backup.
package qlearning

import (
	"fmt"

	"github.com/samuelfneumann/gemgrid/agent"
	"github.com/samuelfneumann/gemgrid/agent/policy"
	"github.com/samuelfneumann/gemgrid/environment"
)

var _ agent.Agent = &QLearning{}

// QLearning implements the Q-Learning algorithm
type QLearning struct {
	*QLearner
	behaviour *policy.EGreedy
	target    *policy.Greedy
	config    Config
}

// New creates a new QLearning struct for env. Exploration draws come
// from rng.
func New(env environment.Environment, c Config,
	rng policy.Source) (*QLearning, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: invalid config: %w", err)
	}

	// Create algorithm components sharing a single table
	table := NewQTable(env.NumStates(), environment.NumActions)
	behaviour := policy.NewEGreedy(c.Epsilon, table, rng)
	target := policy.NewGreedy(table)
	learner := NewQLearner(table, c.LearningRate, c.Discount)

	return &QLearning{learner, behaviour, target, c}, nil
}

// SelectAction selects an action in state using the ε-greedy behaviour
// policy
func (q *QLearning) SelectAction(state int) environment.Action {
	return q.behaviour.SelectAction(state)
}

// Exploit selects the greedy action in state
func (q *QLearning) Exploit(state int) environment.Action {
	return q.target.SelectAction(state)
}

// EndEpisode decays the exploration rate of the behaviour policy. It
// should be called exactly once per completed episode.
func (q *QLearning) EndEpisode() {
	q.behaviour.SetEpsilon(q.config.DecayEpsilon(q.behaviour.Epsilon()))
}

// Epsilon returns the current exploration rate
func (q *QLearning) Epsilon() float64 {
	return q.behaviour.Epsilon()
}

// SetEpsilon overrides the current exploration rate
func (q *QLearning) SetEpsilon(e float64) {
	q.behaviour.SetEpsilon(e)
}

// Reset discards all learned action values and restores the initial
// exploration rate
func (q *QLearning) Reset() {
	q.table.Reset()
	q.behaviour.SetEpsilon(q.config.Epsilon)
}

// Config returns the configuration of the agent
func (q *QLearning) Config() Config {
	return q.config
}
