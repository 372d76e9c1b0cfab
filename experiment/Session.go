// Package experiment runs a Q-Learning agent on the gem gridworld.
//
// A Session owns the environment, the agent and the path bookkeeping of
// a single learning run, and exposes it as a two phase state machine:
// while Active each Step moves the agent once; when a terminal cell is
// reached the Session is Settling until AdvanceTime has consumed the
// settle delay, after which the agent is returned to the start cell.
// The Session never starts timers or goroutines of its own. Drive and
// Online advance it periodically or as fast as possible.
package experiment

import (
	"fmt"
	"math"
	"time"

	"github.com/samuelfneumann/gemgrid/agent/policy"
	"github.com/samuelfneumann/gemgrid/agent/qlearning"
	"github.com/samuelfneumann/gemgrid/environment"
	"github.com/samuelfneumann/gemgrid/environment/gridworld"
	"github.com/samuelfneumann/gemgrid/experiment/trackers"
	ts "github.com/samuelfneumann/gemgrid/timestep"
	"github.com/samuelfneumann/gemgrid/trajectory"
)

// Phase is the episode phase of a Session
type Phase int

const (
	// Active sessions accept steps
	Active Phase = iota

	// Settling sessions have reached a terminal cell and wait for the
	// settle delay to elapse before starting the next episode
	Settling
)

func (p Phase) String() string {
	switch p {
	case Active:
		return "Active"
	case Settling:
		return "Settling"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Stats are the running statistics of a Session
type Stats struct {
	Steps             int
	Episodes          int
	CumulativeReward  float64
	BestEpisodeReward float64 // -Inf until an episode completes
	Epsilon           float64
}

func (s Stats) String() string {
	return fmt.Sprintf("Steps: %d  |  Episodes: %d  |  Cumulative Reward: "+
		"%.2f  |  Best Episode: %.2f  |  ε: %.4f", s.Steps, s.Episodes,
		s.CumulativeReward, s.BestEpisodeReward, s.Epsilon)
}

// Snapshot is a deep copy of everything observable about a Session.
// Snapshots share no memory with the Session that produced them.
type Snapshot struct {
	Grid            [gridworld.GridSize][gridworld.GridSize]gridworld.CellKind
	Position        environment.Position
	Phase           Phase
	Running         bool
	Stats           Stats
	HasQTable       bool
	Trajectory      []trajectory.PathStep
	OptimalPath     []environment.Position
	ShowOptimalPath bool
	SavedPaths      []trajectory.SavedPath
}

// Session is a single Q-Learning run on the gem gridworld.
//
// A Session is not safe for concurrent use. Only one goroutine may call
// its methods at a time; other goroutines should observe Snapshots.
type Session struct {
	config Config

	world   *gridworld.GridWorld
	agent   *qlearning.QLearning
	path    *trajectory.Trajectory
	history *trajectory.History

	optimal     []environment.Position
	showOptimal bool

	phase           Phase
	settleRemaining time.Duration
	running         bool
	unsaved         bool
	stats           Stats

	trackers []trackers.Tracker
}

// New creates a new Session with configuration c. Exploration is seeded
// with c.Seed and saved paths are timestamped with the wall clock.
func New(c Config) (*Session, error) {
	return NewWithSource(c, policy.NewSource(c.Seed), time.Now)
}

// NewWithSource creates a new Session which draws exploration from rng
// and timestamps saved paths with now
func NewWithSource(c Config, rng policy.Source,
	now func() time.Time) (*Session, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("newWithSource: %w", err)
	}

	world, first := gridworld.NewDefault(c.Agent.Discount)
	agent, err := qlearning.New(world, c.Agent, rng)
	if err != nil {
		return nil, fmt.Errorf("newWithSource: could not create agent: %w",
			err)
	}

	s := &Session{
		config:  c,
		world:   world,
		agent:   agent,
		path:    trajectory.New(),
		history: trajectory.NewHistoryWithClock(now),
	}
	s.restart(first)

	return s, nil
}

// restart returns the Session to its initial state, starting from the
// first TimeStep of a new episode
func (s *Session) restart(first ts.TimeStep) {
	s.path.Clear()
	s.optimal = nil
	s.showOptimal = false
	s.phase = Active
	s.settleRemaining = 0
	s.running = false
	s.unsaved = false
	s.stats = Stats{
		BestEpisodeReward: math.Inf(-1),
		Epsilon:           s.agent.Epsilon(),
	}
	s.track(first)
}

// Register registers a Tracker with the Session so that every TimeStep
// of the Session is tracked
func (s *Session) Register(t trackers.Tracker) {
	s.trackers = append(s.trackers, t)
}

// track passes t to each registered Tracker
func (s *Session) track(t ts.TimeStep) {
	for _, tracker := range s.trackers {
		tracker.Track(t)
	}
}

// SaveTrackers saves the data of each registered Tracker
func (s *Session) SaveTrackers() error {
	for _, tracker := range s.trackers {
		if err := tracker.Save(); err != nil {
			return fmt.Errorf("saveTrackers: %w", err)
		}
	}
	return nil
}

// Step moves the agent once. Step does nothing unless the Session is
// Active.
func (s *Session) Step() Snapshot {
	if s.phase != Active {
		return s.Snapshot()
	}

	// Select an action and take it in the environment
	position := s.world.Position()
	state := gridworld.StateID(position)
	action := s.agent.SelectAction(state)
	step, last := s.world.Step(action)

	s.path.Record(trajectory.PathStep{
		From:   position,
		Action: action,
		Reward: step.Reward,
	})
	s.unsaved = true
	s.agent.Update(state, action, step.Reward, step.Observation)

	s.stats.Steps++
	s.stats.CumulativeReward += step.Reward
	s.track(step)

	if last {
		s.endEpisode()
	}

	return s.Snapshot()
}

// endEpisode finalizes an episode which has reached a terminal cell
func (s *Session) endEpisode() {
	total := s.path.Total()
	if total > s.stats.BestEpisodeReward {
		s.stats.BestEpisodeReward = total
	}
	s.stats.Episodes++

	s.agent.EndEpisode()
	s.stats.Epsilon = s.agent.Epsilon()

	s.optimal = trajectory.ExtractOptimalPath(s.world.Grid(),
		s.agent.Table().Clone())

	s.phase = Settling
	s.settleRemaining = time.Duration(s.config.SettleDelay)
}

// AdvanceTime lets d elapse. If the Session is Settling and its settle
// delay has elapsed, the agent is returned to the start cell, the
// trajectory is cleared and the Session becomes Active.
func (s *Session) AdvanceTime(d time.Duration) Snapshot {
	if s.phase != Settling {
		return s.Snapshot()
	}

	s.settleRemaining -= d
	if s.settleRemaining <= 0 {
		s.settleRemaining = 0
		s.path.Clear()
		s.unsaved = false
		s.phase = Active
		s.track(s.world.Reset())
	}

	return s.Snapshot()
}

// Tick is one beat of a periodic driver which fires every d. A
// Settling Session has its settle delay advanced by d whether running
// or not. An Active Session is stepped only while running.
func (s *Session) Tick(d time.Duration) Snapshot {
	if s.phase == Settling {
		return s.AdvanceTime(d)
	}
	if s.running {
		return s.Step()
	}
	return s.Snapshot()
}

// ToggleRun flips whether a periodic driver should step the Session
func (s *Session) ToggleRun() Snapshot {
	s.running = !s.running
	return s.Snapshot()
}

// Running returns whether a periodic driver should step the Session
func (s *Session) Running() bool {
	return s.running
}

// Reset returns the Session to its initial state on a fresh grid. All
// learned action values, statistics and paths are discarded, except
// for saved paths which are kept.
func (s *Session) Reset() Snapshot {
	world, first := gridworld.NewDefault(s.config.Agent.Discount)
	s.world = world
	s.agent.Reset()
	s.restart(first)

	return s.Snapshot()
}

// ShowOptimalPath recomputes the optimal path from the current action
// values and marks it visible. If nothing has been learned yet,
// ShowOptimalPath does nothing.
func (s *Session) ShowOptimalPath() Snapshot {
	if s.agent.Table().Empty() {
		return s.Snapshot()
	}

	s.showOptimal = true
	s.optimal = trajectory.ExtractOptimalPath(s.world.Grid(),
		s.agent.Table().Clone())
	return s.Snapshot()
}

// HideOptimalPath marks the optimal path hidden
func (s *Session) HideOptimalPath() Snapshot {
	s.showOptimal = false
	return s.Snapshot()
}

// SaveCurrentPath appends the current trajectory to the saved path
// history. Nothing is saved if the trajectory is empty or has already
// been saved with no steps taken since.
func (s *Session) SaveCurrentPath() (trajectory.SavedPath, bool) {
	if !s.unsaved {
		return trajectory.SavedPath{}, false
	}

	saved, ok := s.history.Save(s.path.Steps())
	if ok {
		s.unsaved = false
	}
	return saved, ok
}

// Place moves the agent to p without taking a step. Positions outside
// the grid are clamped.
func (s *Session) Place(p environment.Position) {
	s.world.SetPosition(p)
}

// SetEpsilon overrides the current exploration rate
func (s *Session) SetEpsilon(e float64) {
	s.agent.SetEpsilon(e)
	s.stats.Epsilon = s.agent.Epsilon()
}

// Grid returns the grid of the Session
func (s *Session) Grid() *gridworld.Grid {
	return s.world.Grid()
}

// Position returns the current agent position
func (s *Session) Position() environment.Position {
	return s.world.Position()
}

// Trajectory returns the most recent n steps of the current episode. If
// n < 1, the configured path cap is used.
func (s *Session) Trajectory(n int) []trajectory.PathStep {
	if n < 1 {
		n = s.config.PathCap
	}
	return s.path.Recent(n)
}

// OptimalPath returns a copy of the most recently computed optimal path
func (s *Session) OptimalPath() []environment.Position {
	if s.optimal == nil {
		return nil
	}
	path := make([]environment.Position, len(s.optimal))
	copy(path, s.optimal)
	return path
}

// OptimalPathVisible returns whether the optimal path is marked visible
func (s *Session) OptimalPathVisible() bool {
	return s.showOptimal
}

// SavedPaths returns copies of all saved paths
func (s *Session) SavedPaths() []trajectory.SavedPath {
	return s.history.All()
}

// Stats returns the running statistics of the Session
func (s *Session) Stats() Stats {
	return s.stats
}

// Phase returns the current episode phase
func (s *Session) Phase() Phase {
	return s.phase
}

// QTable returns a copy of the learned action values
func (s *Session) QTable() *qlearning.QTable {
	return s.agent.Table().Clone()
}

// TimeStep returns the most recent TimeStep of the Session
func (s *Session) TimeStep() ts.TimeStep {
	return s.world.CurrentTimeStep()
}

// Config returns the configuration of the Session
func (s *Session) Config() Config {
	return s.config
}

// Snapshot returns a deep copy of the observable state of the Session
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Grid:            s.world.Grid().Cells(),
		Position:        s.world.Position(),
		Phase:           s.phase,
		Running:         s.running,
		Stats:           s.stats,
		HasQTable:       !s.agent.Table().Empty(),
		Trajectory:      s.path.Steps(),
		OptimalPath:     s.OptimalPath(),
		ShowOptimalPath: s.showOptimal,
		SavedPaths:      s.history.All(),
	}
}
