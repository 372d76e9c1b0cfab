package trajectory

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SavedPath is an immutable snapshot of an episode trajectory
type SavedPath struct {
	ID          string
	Name        string
	Steps       []PathStep
	TotalReward float64
	CapturedAt  time.Time
}

// History is an append-only store of SavedPaths. No saved entry is ever
// removed or edited.
type History struct {
	paths []SavedPath
	now   func() time.Time
}

// NewHistory returns a new, empty History which timestamps entries
// with the wall clock
func NewHistory() *History {
	return NewHistoryWithClock(time.Now)
}

// NewHistoryWithClock returns a new, empty History which timestamps
// entries with now
func NewHistoryWithClock(now func() time.Time) *History {
	return &History{now: now}
}

// Save appends a snapshot of steps to the history and returns it. If
// steps is empty, nothing is saved and false is returned.
func (h *History) Save(steps []PathStep) (SavedPath, bool) {
	if len(steps) == 0 {
		return SavedPath{}, false
	}

	saved := SavedPath{
		ID:          uuid.New().String(),
		Name:        fmt.Sprintf("Path %d", len(h.paths)+1),
		Steps:       Copy(steps),
		TotalReward: TotalReward(steps),
		CapturedAt:  h.now(),
	}
	h.paths = append(h.paths, saved)

	return clonePath(saved), true
}

// Len returns the number of saved paths
func (h *History) Len() int {
	return len(h.paths)
}

// All returns copies of every saved path, oldest first
func (h *History) All() []SavedPath {
	paths := make([]SavedPath, len(h.paths))
	for i, p := range h.paths {
		paths[i] = clonePath(p)
	}
	return paths
}

func clonePath(p SavedPath) SavedPath {
	p.Steps = Copy(p.Steps)
	return p
}
