package qlearning

import (
	"github.com/samuelfneumann/gemgrid/environment"
)

// QLearner implements the update functionality for the Q-Learning
// algorithm.
type QLearner struct {
	table        *QTable
	learningRate float64
	discount     float64
}

// NewQLearner creates a new QLearner struct
//
// table is the action value table of the policy to learn
func NewQLearner(table *QTable, learningRate, discount float64) *QLearner {
	return &QLearner{table, learningRate, discount}
}

// Update applies the one step Q-Learning backup
//
//	Q(s, a) += α * (r + γ * max_a' Q(s', a') - Q(s, a))
//
// Both state and next are materialized before any value is read.
func (q *QLearner) Update(state int, action environment.Action,
	reward float64, next int) {
	q.table.EnsureState(state)
	q.table.EnsureState(next)

	tdError := q.tdError(state, action, reward, next)
	current := q.table.At(state, action)
	q.table.Set(state, action, current+q.learningRate*tdError)
}

// TdError returns the temporal difference error of a transition
func (q *QLearner) TdError(state int, action environment.Action,
	reward float64, next int) float64 {
	return q.tdError(state, action, reward, next)
}

func (q *QLearner) tdError(state int, action environment.Action,
	reward float64, next int) float64 {
	// Create the update target
	target := reward + q.discount*q.table.Max(next)

	// Find the current estimate of the taken action
	return target - q.table.At(state, action)
}

// Table returns the action value table the QLearner updates
func (q *QLearner) Table() *QTable {
	return q.table
}
