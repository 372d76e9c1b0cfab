package gridworld

import (
	"fmt"

	"github.com/samuelfneumann/gemgrid/environment"
)

// SingleStart is a Starter which always starts episodes in the same cell
type SingleStart struct {
	position environment.Position
}

// NewSingleStart returns a Starter which starts every episode at (row, col)
func NewSingleStart(row, col int) (environment.Starter, error) {
	p := environment.Position{Row: row, Col: col}
	if !InBounds(p) {
		return &SingleStart{}, fmt.Errorf("newSingleStart: start %v outside "+
			"of %dx%d grid", p, GridSize, GridSize)
	}
	return &SingleStart{p}, nil
}

// Start returns the starting position
func (s *SingleStart) Start() environment.Position {
	return s.position
}
