package experiment

import (
	"fmt"

	"github.com/samuelfneumann/gemgrid/agent/qlearning"
	"github.com/samuelfneumann/gemgrid/environment"
	"github.com/samuelfneumann/gemgrid/environment/gridworld"
	"github.com/samuelfneumann/gemgrid/experiment/checkpointer"
)

var _ checkpointer.Serializable = &Session{}

// GobEncode encodes the learned action values of the Session
func (s *Session) GobEncode() ([]byte, error) {
	return s.agent.Table().GobEncode()
}

// GobDecode replaces the learned action values of the Session with
// those encoded by GobEncode
func (s *Session) GobDecode(in []byte) error {
	table := &qlearning.QTable{}
	if err := table.GobDecode(in); err != nil {
		return fmt.Errorf("gobDecode: %w", err)
	}
	return s.restore(table)
}

// Save saves the learned action values of the Session to filename
func (s *Session) Save(filename string) error {
	return s.agent.Table().Save(filename)
}

// LoadQTable replaces the learned action values of the Session with
// those saved to filename by Save
func (s *Session) LoadQTable(filename string) error {
	table, err := qlearning.LoadQTable(filename)
	if err != nil {
		return fmt.Errorf("loadQTable: %w", err)
	}
	return s.restore(table)
}

func (s *Session) restore(table *qlearning.QTable) error {
	states, actions := table.Dims()
	if states != gridworld.NumStates || actions != environment.NumActions {
		return fmt.Errorf("restore: table is %dx%d but the gridworld needs "+
			"%dx%d", states, actions, gridworld.NumStates,
			environment.NumActions)
	}
	s.agent.Table().CopyFrom(table)
	return nil
}
