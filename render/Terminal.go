// Package render draws Session snapshots for people: as coloured
// terminal text, as PNG images, and as charts of episodic return.
package render

import (
	"fmt"
	"strings"

	"github.com/logrusorgru/aurora"

	"github.com/samuelfneumann/gemgrid/agent/qlearning"
	"github.com/samuelfneumann/gemgrid/environment"
	"github.com/samuelfneumann/gemgrid/environment/gridworld"
	"github.com/samuelfneumann/gemgrid/experiment"
)

// Cell glyphs used by the terminal renderer
const (
	AgentGlyph   = "A"
	GemGlyph     = "G"
	SkullGlyph   = "X"
	StartGlyph   = "S"
	PathGlyph    = "*"
	EmptyGlyph   = "."
	UnknownGlyph = "?"
)

// Terminal renders snapshots as text for a terminal
type Terminal struct {
	au aurora.Aurora
}

// NewTerminal returns a new Terminal renderer. If colors is false, the
// output contains no escape sequences.
func NewTerminal(colors bool) *Terminal {
	return &Terminal{au: aurora.NewAurora(colors)}
}

// Grid renders the grid of s. The agent is drawn over any cell it is
// on, and the optimal path is drawn over empty cells if it is visible.
func (t *Terminal) Grid(s experiment.Snapshot) string {
	onPath := make(map[environment.Position]bool)
	if s.ShowOptimalPath {
		for _, p := range s.OptimalPath {
			onPath[p] = true
		}
	}

	var b strings.Builder
	border := "+" + strings.Repeat("---+", gridworld.GridSize)
	b.WriteString(t.au.White(border).String() + "\n")

	for r := 0; r < gridworld.GridSize; r++ {
		b.WriteString(t.au.White("|").String())
		for c := 0; c < gridworld.GridSize; c++ {
			p := environment.Position{Row: r, Col: c}
			b.WriteString(" " + t.cell(s.Grid[r][c], p == s.Position,
				onPath[p]) + " ")
			b.WriteString(t.au.White("|").String())
		}
		b.WriteString("\n" + t.au.White(border).String() + "\n")
	}

	return b.String()
}

func (t *Terminal) cell(kind gridworld.CellKind, agent, path bool) string {
	if agent {
		return t.au.Bold(t.au.Cyan(AgentGlyph)).String()
	}

	switch kind {
	case gridworld.Gem:
		return t.au.Green(GemGlyph).String()
	case gridworld.Skull:
		return t.au.Red(SkullGlyph).String()
	}

	if path {
		return t.au.Yellow(PathGlyph).String()
	}
	if kind == gridworld.Start {
		return t.au.Blue(StartGlyph).String()
	}
	return EmptyGlyph
}

// Policy renders the greedy action of each state of table as an arrow.
// Terminal cells are drawn with their glyph and states that were never
// visited with UnknownGlyph.
func (t *Terminal) Policy(grid *gridworld.Grid, table *qlearning.QTable) string {
	var b strings.Builder
	for r := 0; r < gridworld.GridSize; r++ {
		for c := 0; c < gridworld.GridSize; c++ {
			p := environment.Position{Row: r, Col: c}
			state := gridworld.StateID(p)

			switch {
			case grid.Kind(p) == gridworld.Gem:
				b.WriteString(t.au.Green(GemGlyph).String())
			case grid.Kind(p) == gridworld.Skull:
				b.WriteString(t.au.Red(SkullGlyph).String())
			case !table.Materialized(state):
				b.WriteString(UnknownGlyph)
			default:
				b.WriteString(t.au.Blue(table.Greedy(state).Arrow()).String())
			}
			if c < gridworld.GridSize-1 {
				b.WriteString(" ")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Values renders the value of the greedy action of each state of table.
// States that were never visited are drawn as blanks.
func (t *Terminal) Values(table *qlearning.QTable) string {
	values := table.StateValues()

	var b strings.Builder
	for r := 0; r < gridworld.GridSize; r++ {
		for c := 0; c < gridworld.GridSize; c++ {
			state := gridworld.StateID(environment.Position{Row: r, Col: c})
			v, ok := values[state]
			if !ok {
				b.WriteString(strings.Repeat(" ", 7))
			} else if v < 0 {
				b.WriteString(t.au.Red(fmt.Sprintf("%7.2f", v)).String())
			} else {
				b.WriteString(t.au.Green(fmt.Sprintf("%7.2f", v)).String())
			}
			b.WriteString(t.au.White("|").String())
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Stats renders the statistics of s on one line
func (t *Terminal) Stats(s experiment.Snapshot) string {
	state := s.Phase.String()
	if !s.Running {
		state += ", paused"
	}
	return fmt.Sprintf("%v  [%v]", s.Stats, t.au.Magenta(state))
}

// SavedPaths renders one line for each saved path of s
func (t *Terminal) SavedPaths(s experiment.Snapshot) string {
	var b strings.Builder
	for _, path := range s.SavedPaths {
		fmt.Fprintf(&b, "%v  %v steps  reward %v  %v\n",
			t.au.Bold(path.Name), len(path.Steps),
			t.au.Yellow(fmt.Sprintf("%.2f", path.TotalReward)),
			path.CapturedAt.Format("15:04:05"))
	}
	return b.String()
}
