package experiment

import (
	"github.com/samuelfneumann/gemgrid/experiment/trackers"
)

// Experiment outlines structs that run a learning agent in the gem
// gridworld. Experiments send each TimeStep to their registered
// Trackers, which cache the data they care about in RAM until
// SaveTrackers writes it to disk. Run runs episodes until the step
// limit is reached, and RunEpisode runs a single episode.
type Experiment interface {
	Run() error

	// RunEpisode runs one episode and returns whether the step limit
	// has been reached
	RunEpisode() (bool, error)

	// Register adds a Tracker to the (possibly already running)
	// experiment. Useful to track data only after a specified event.
	Register(t trackers.Tracker)

	// SaveTrackers saves all tracked data to disk
	SaveTrackers() error
}

var _ Experiment = &Online{}
