package environment

import "fmt"

// Action is one of the four moves available to the agent. The order of
// the constants is the order used to break ties between equally valued
// actions.
type Action int

const (
	Up Action = iota
	Down
	Left
	Right
)

// NumActions is the number of actions in every grid environment
const NumActions int = 4

// Actions lists every Action in tie-breaking order
var Actions = [NumActions]Action{Up, Down, Left, Right}

// Displacement returns the row and column offsets the action applies
func (a Action) Displacement() (dRow, dCol int) {
	switch a {
	case Up:
		return -1, 0
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	case Right:
		return 0, 1
	}
	panic(fmt.Sprintf("displacement: no such action %d", int(a)))
}

// Valid returns whether the Action is one of the four known actions
func (a Action) Valid() bool {
	return a >= Up && a <= Right
}

func (a Action) String() string {
	switch a {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Arrow returns a single-rune glyph pointing in the Action's direction
func (a Action) Arrow() string {
	switch a {
	case Up:
		return "↑"
	case Down:
		return "↓"
	case Left:
		return "←"
	case Right:
		return "→"
	}
	return "?"
}
