package policy

import (
	"github.com/samuelfneumann/gemgrid/agent"
	"github.com/samuelfneumann/gemgrid/environment"
)

// Greedy always exploits the current action values
type Greedy struct {
	values agent.ActionValuer
}

// NewGreedy creates a new Greedy policy
func NewGreedy(values agent.ActionValuer) *Greedy {
	return &Greedy{values}
}

// SelectAction selects the first maximal action in state
func (g *Greedy) SelectAction(state int) environment.Action {
	g.values.EnsureState(state)
	return BestAction(g.values.ActionValues(state))
}
