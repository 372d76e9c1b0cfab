// Package checkpointer periodically saves serializable objects, such as
// a learned Q-table, while an experiment runs
package checkpointer

import (
	"encoding/gob"

	ts "github.com/samuelfneumann/gemgrid/timestep"
)

// Serializable is an object that can be saved/serialized
type Serializable interface {
	gob.GobEncoder
	gob.GobDecoder
	Save(filename string) error
}

// Checkpointer checkpoints/saves serializable objects based on
// timestep.TimeSteps
type Checkpointer interface {
	Checkpoint(ts.TimeStep) error
}
