package experiment

import (
	"fmt"
	"time"

	"github.com/samuelfneumann/gemgrid/experiment/checkpointer"
)

// Online runs a Session headless, as fast as possible. Settling phases
// are skipped by advancing time past the settle delay.
type Online struct {
	*Session
	maxSteps      uint
	currentSteps  uint
	checkpointers []checkpointer.Checkpointer
}

// NewOnline creates and returns a new online experiment on a Session.
// The steps parameter bounds how many timesteps the experiment may be
// run for, with 0 meaning no bound, and c is a list of Checkpointers
// which see every TimeStep of the experiment.
func NewOnline(s *Session, steps uint,
	c ...checkpointer.Checkpointer) *Online {
	return &Online{Session: s, maxSteps: steps, checkpointers: c}
}

// RegisterCheckpointer registers a Checkpointer with the experiment
func (o *Online) RegisterCheckpointer(c checkpointer.Checkpointer) {
	o.checkpointers = append(o.checkpointers, c)
}

// RunEpisode runs a single episode of the experiment and returns
// whether the step limit has been reached. If the Session is Settling
// when RunEpisode is called, the settle phase is skipped first.
func (o *Online) RunEpisode() (bool, error) {
	o.settle()

	for o.Phase() == Active && !o.limitReached() {
		o.currentSteps++
		o.Step()

		if err := o.checkpoint(); err != nil {
			return o.limitReached(), fmt.Errorf("runEpisode: %w", err)
		}
	}

	o.settle()
	return o.limitReached(), nil
}

// RunEpisodes runs n episodes of the experiment, or fewer if the step
// limit is reached. If after is not nil, it is called once each
// episode finishes with the number of episodes run so far.
func (o *Online) RunEpisodes(n int, after func(episode int)) error {
	for i := 1; i <= n; i++ {
		ended, err := o.RunEpisode()
		if err != nil {
			return fmt.Errorf("runEpisodes: %w", err)
		}
		if after != nil {
			after(i)
		}
		if ended {
			return nil
		}
	}
	return nil
}

// Run runs the entire experiment for all timesteps. If the experiment
// has no step limit, Run returns an error.
func (o *Online) Run() error {
	if o.maxSteps == 0 {
		return fmt.Errorf("run: cannot run an experiment without a step " +
			"limit to completion")
	}

	for ended := false; !ended; {
		var err error
		if ended, err = o.RunEpisode(); err != nil {
			return fmt.Errorf("run: %w", err)
		}
	}
	return nil
}

// Steps returns the number of timesteps run by the experiment
func (o *Online) Steps() uint {
	return o.currentSteps
}

func (o *Online) limitReached() bool {
	return o.maxSteps > 0 && o.currentSteps >= o.maxSteps
}

// settle skips any pending settle phase
func (o *Online) settle() {
	if o.Phase() == Settling {
		o.AdvanceTime(time.Duration(o.Config().SettleDelay))
	}
}

// checkpoint passes the most recent TimeStep to each Checkpointer
func (o *Online) checkpoint() error {
	for _, c := range o.checkpointers {
		if err := c.Checkpoint(o.TimeStep()); err != nil {
			return fmt.Errorf("checkpoint: %w", err)
		}
	}
	return nil
}
