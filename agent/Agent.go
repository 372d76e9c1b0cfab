// Package agent defines an agent interface
package agent

import (
	"github.com/samuelfneumann/gemgrid/environment"
)

// Agent determines the implementation details of an agent or algorithm
//
// An Agent is composed of a Learner, which learns action values, and a
// Policy which chooses actions in each state. The Learner and Policy of
// an Agent should share the same ActionValuer so that any changes the
// Learner makes are reflected in the actions the Policy chooses.
type Agent interface {
	Learner
	Policy
}

// Learner implements a learning algorithm that defines how action
// values are updated from observed transitions
type Learner interface {
	// Update performs a single update using the transition
	// (state, action, reward, next)
	Update(state int, action environment.Action, reward float64, next int)

	// TdError returns the temporal difference error of the transition
	// under the current action values
	TdError(state int, action environment.Action, reward float64,
		next int) float64
}

// Policy represents a policy that an agent can have.
//
// Policies determine how agents select actions in each state
type Policy interface {
	SelectAction(state int) environment.Action
}

// ActionValuer stores one value estimate per (state, action) pair.
//
// States are materialized explicitly with EnsureState before their
// values are compared. A state that was never materialized has no
// information and reads as all zeros.
type ActionValuer interface {
	EnsureState(state int)
	Materialized(state int) bool
	ActionValues(state int) []float64
}
