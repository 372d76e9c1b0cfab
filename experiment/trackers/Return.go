package trackers

import (
	"fmt"
	"os"

	"gonum.org/v1/gonum/stat"

	ts "github.com/samuelfneumann/gemgrid/timestep"
)

// Return tracks and saves the episodic return in an experiment. When
// an environment returns a TimeStep, this Tracker will extract the
// reward and accumulate the return for each episode in the experiment.
//
// Note: An episode must finish for this Tracker to save its data.
// If the last episode in an experiment does not finish, that episode's
// return will not be saved.
type Return struct {
	lastTimeStep   int
	currentReturn  float64
	episodeReturns []float64
	filename       string
}

// NewReturn creates and returns a new *Return Tracker
func NewReturn(filename string) *Return {
	var tracker Return
	tracker.lastTimeStep = -1
	tracker.filename = filename
	return &tracker
}

// Track tracks the rewards seen on a timestep. By calling this method
// on every timestep, the Tracker will store all rewards seen in the
// episode, and save the cumulative reward for that episode as the
// episodic return.
//
// A First TimeStep always starts a new episode, discarding the return
// of any unfinished episode.
func (r *Return) Track(step ts.TimeStep) {
	if step.First() {
		r.currentReturn = 0.0
		r.lastTimeStep = step.Number
		return
	}

	// Warn if Track is called on non-sequential timesteps
	if r.lastTimeStep+1 != step.Number {
		fmt.Fprintf(os.Stderr, "Warning: last two timesteps tracked are "+
			"not sequential: timestep %v --> timestep %v were tracked\n",
			r.lastTimeStep, step.Number)
	}

	r.currentReturn += step.Reward
	r.lastTimeStep = step.Number

	// Episode has ended, cache the return and begin tracking the
	// return for a new episode
	if step.Last() {
		r.episodeReturns = append(r.episodeReturns, r.currentReturn)
		r.currentReturn = 0.0
		r.lastTimeStep = -1
	}
}

// Returns returns a copy of the return of each finished episode
func (r *Return) Returns() []float64 {
	returns := make([]float64, len(r.episodeReturns))
	copy(returns, r.episodeReturns)
	return returns
}

// Mean returns the mean return over the last n finished episodes, or
// every finished episode if n <= 0. The mean of no episodes is 0.
func (r *Return) Mean(n int) float64 {
	returns := r.episodeReturns
	if len(returns) == 0 {
		return 0
	}
	if n > 0 && n < len(returns) {
		returns = returns[len(returns)-n:]
	}
	return stat.Mean(returns, nil)
}

// Save saves the data tracked by the Return Tracker to disk.
func (r *Return) Save() error {
	return save(r.filename, r.episodeReturns)
}
