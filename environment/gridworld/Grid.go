package gridworld

import (
	"fmt"
	"strings"

	"github.com/samuelfneumann/gemgrid/environment"
	"github.com/samuelfneumann/gemgrid/utils/intutils"
)

// GridSize is the number of rows and columns of the grid
const GridSize int = 5

// NumStates is the number of cells, and so the number of states, in the grid
const NumStates int = GridSize * GridSize

// Rewards for entering each kind of cell
const (
	GemReward   float64 = 10.0
	SkullReward float64 = -10.0
	StepReward  float64 = -0.1
)

// CellKind determines what occupies a cell of the grid
type CellKind int

const (
	Empty CellKind = iota
	Start
	Gem
	Skull
)

func (c CellKind) String() string {
	switch c {
	case Start:
		return "start"
	case Gem:
		return "gem"
	case Skull:
		return "skull"
	default:
		return "empty"
	}
}

// Fixed layout of the grid
var (
	StartPosition  = environment.Position{Row: 0, Col: 0}
	GemPosition    = environment.Position{Row: 4, Col: 4}
	SkullPositions = []environment.Position{
		{Row: 2, Col: 2},
		{Row: 1, Col: 3},
		{Row: 3, Col: 1},
	}
)

// Grid is the fixed GridSize x GridSize layout of cells. The kind of a
// cell never changes once a Grid is created.
type Grid struct {
	cells [GridSize][GridSize]CellKind
}

// NewGrid creates the fixed grid layout: start at (0, 0), the gem at
// (4, 4), and skulls at (2, 2), (1, 3), and (3, 1)
func NewGrid() *Grid {
	g := &Grid{}
	g.cells[StartPosition.Row][StartPosition.Col] = Start
	g.cells[GemPosition.Row][GemPosition.Col] = Gem
	for _, p := range SkullPositions {
		g.cells[p.Row][p.Col] = Skull
	}
	return g
}

// Kind returns the kind of cell at position p. Positions outside the
// grid are reported as Empty.
func (g *Grid) Kind(p environment.Position) CellKind {
	if !InBounds(p) {
		return Empty
	}
	return g.cells[p.Row][p.Col]
}

// Cells returns a copy of the grid layout, indexed [row][col]
func (g *Grid) Cells() [GridSize][GridSize]CellKind {
	return g.cells
}

// Reward returns the reward for entering cell p
func (g *Grid) Reward(p environment.Position) float64 {
	switch g.Kind(p) {
	case Gem:
		return GemReward
	case Skull:
		return SkullReward
	default:
		return StepReward
	}
}

// IsTerminal returns whether entering cell p ends an episode
func (g *Grid) IsTerminal(p environment.Position) bool {
	kind := g.Kind(p)
	return kind == Gem || kind == Skull
}

// String returns the grid layout as a string
func (g *Grid) String() string {
	var b strings.Builder
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			b.WriteString(glyph(g.cells[r][c]))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func glyph(c CellKind) string {
	switch c {
	case Start:
		return " S "
	case Gem:
		return " G "
	case Skull:
		return " X "
	default:
		return " . "
	}
}

// Transition returns the position reached by taking action a in
// position p. Each coordinate is clamped to the grid independently, so
// moving into a wall leaves that coordinate unchanged.
func Transition(p environment.Position, a environment.Action) environment.Position {
	dRow, dCol := a.Displacement()
	return environment.Position{
		Row: intutils.Clip(p.Row+dRow, 0, GridSize-1),
		Col: intutils.Clip(p.Col+dCol, 0, GridSize-1),
	}
}

// InBounds returns whether p lies on the grid
func InBounds(p environment.Position) bool {
	return p.Row >= 0 && p.Row < GridSize && p.Col >= 0 && p.Col < GridSize
}

// StateID returns the integer state identifier row*GridSize + col of p
func StateID(p environment.Position) int {
	if !InBounds(p) {
		panic(fmt.Sprintf("stateID: position %v outside of grid", p))
	}
	return p.Row*GridSize + p.Col
}

// PositionOf returns the position with state identifier id
func PositionOf(id int) environment.Position {
	if id < 0 || id >= NumStates {
		panic(fmt.Sprintf("positionOf: no such state %d", id))
	}
	return environment.Position{Row: id / GridSize, Col: id % GridSize}
}
