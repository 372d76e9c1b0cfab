package experiment

import (
	"math"
	"testing"
	"time"

	"github.com/samuelfneumann/gemgrid/agent/policy"
	"github.com/samuelfneumann/gemgrid/environment"
	"github.com/samuelfneumann/gemgrid/environment/gridworld"
	"github.com/samuelfneumann/gemgrid/experiment/trackers"
)

// explorer always explores, choosing action
type explorer struct {
	action environment.Action
}

func (e *explorer) Float64() float64 { return 0 }
func (e *explorer) Intn(n int) int   { return int(e.action) % n }

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newSession(t *testing.T, rng policy.Source) *Session {
	t.Helper()
	s, err := NewWithSource(DefaultConfig(), rng, func() time.Time {
		return epoch
	})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNewSession(t *testing.T) {
	s := newSession(t, &explorer{})

	if s.Phase() != Active {
		t.Errorf("Phase() = %v, want Active", s.Phase())
	}
	if s.Running() {
		t.Error("new session should not be running")
	}
	if s.Position() != gridworld.StartPosition {
		t.Errorf("Position() = %v, want %v", s.Position(),
			gridworld.StartPosition)
	}

	stats := s.Stats()
	if stats.Steps != 0 || stats.Episodes != 0 || stats.CumulativeReward != 0 {
		t.Errorf("non-zero counters: %v", stats)
	}
	if !math.IsInf(stats.BestEpisodeReward, -1) {
		t.Errorf("BestEpisodeReward = %v, want -Inf", stats.BestEpisodeReward)
	}
	if stats.Epsilon != 0.2 {
		t.Errorf("Epsilon = %v, want 0.2", stats.Epsilon)
	}
	if !s.QTable().Empty() {
		t.Error("new session should have an empty Q-table")
	}
	if len(s.Trajectory(0)) != 0 || s.OptimalPath() != nil {
		t.Error("new session should have no paths")
	}
}

func TestNewSessionInvalidConfig(t *testing.T) {
	c := DefaultConfig()
	c.Agent.LearningRate = 0
	if _, err := New(c); err == nil {
		t.Error("expected error for invalid config")
	}
}

func TestStepFromStart(t *testing.T) {
	s := newSession(t, &explorer{environment.Right})

	snapshot := s.Step()

	if snapshot.Position != (environment.Position{Row: 0, Col: 1}) {
		t.Errorf("Position = %v, want (0, 1)", snapshot.Position)
	}
	if snapshot.Phase != Active {
		t.Errorf("Phase = %v, want Active", snapshot.Phase)
	}
	if len(snapshot.Trajectory) != 1 {
		t.Fatalf("trajectory length %d, want 1", len(snapshot.Trajectory))
	}

	step := snapshot.Trajectory[0]
	if step.From != gridworld.StartPosition || step.Action != environment.Right ||
		step.Reward != gridworld.StepReward {
		t.Errorf("recorded step %v", step)
	}
	if snapshot.Stats.Steps != 1 || !near(snapshot.Stats.CumulativeReward, -0.1) {
		t.Errorf("stats %v", snapshot.Stats)
	}
	if !snapshot.HasQTable {
		t.Error("stepping should materialize the Q-table")
	}

	// Q(s, a) = 0.1 * (-0.1 + 0.9 * 0 - 0)
	table := s.QTable()
	if v := table.At(gridworld.StateID(gridworld.StartPosition),
		environment.Right); !near(v, -0.01) {
		t.Errorf("Q(start, right) = %v, want -0.01", v)
	}
}

func TestStepToTerminal(t *testing.T) {
	tests := []struct {
		name   string
		from   environment.Position
		action environment.Action
		to     environment.Position
		reward float64
	}{
		{"Gem", environment.Position{Row: 3, Col: 4}, environment.Down,
			gridworld.GemPosition, gridworld.GemReward},
		{"Skull", environment.Position{Row: 1, Col: 2}, environment.Right,
			environment.Position{Row: 1, Col: 3}, gridworld.SkullReward},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := newSession(t, &explorer{test.action})
			s.Place(test.from)

			snapshot := s.Step()

			if snapshot.Position != test.to {
				t.Errorf("Position = %v, want %v", snapshot.Position, test.to)
			}
			if snapshot.Phase != Settling {
				t.Errorf("Phase = %v, want Settling", snapshot.Phase)
			}
			if snapshot.Stats.Episodes != 1 {
				t.Errorf("Episodes = %d, want 1", snapshot.Stats.Episodes)
			}
			if !near(snapshot.Stats.Epsilon, 0.2*0.995) {
				t.Errorf("Epsilon = %v, want %v", snapshot.Stats.Epsilon,
					0.2*0.995)
			}
			if snapshot.Stats.BestEpisodeReward != test.reward {
				t.Errorf("BestEpisodeReward = %v, want %v",
					snapshot.Stats.BestEpisodeReward, test.reward)
			}
			if snapshot.OptimalPath == nil {
				t.Error("optimal path should be published on episode end")
			}
			if !s.TimeStep().Last() {
				t.Error("last TimeStep should end the episode")
			}
		})
	}
}

func TestSettling(t *testing.T) {
	s := newSession(t, &explorer{environment.Down})
	s.Place(environment.Position{Row: 3, Col: 4})
	s.Step()

	// Steps are ignored while settling
	before := s.Stats()
	snapshot := s.Step()
	if snapshot.Stats != before || snapshot.Position != gridworld.GemPosition {
		t.Error("Step should do nothing while settling")
	}

	snapshot = s.AdvanceTime(500 * time.Millisecond)
	if snapshot.Phase != Settling || len(snapshot.Trajectory) != 1 {
		t.Error("session should still be settling")
	}

	snapshot = s.AdvanceTime(500 * time.Millisecond)
	if snapshot.Phase != Active {
		t.Errorf("Phase = %v, want Active", snapshot.Phase)
	}
	if snapshot.Position != gridworld.StartPosition {
		t.Errorf("Position = %v, want start", snapshot.Position)
	}
	if len(snapshot.Trajectory) != 0 {
		t.Error("trajectory should be cleared for the next episode")
	}
	if !s.TimeStep().First() {
		t.Error("a new episode should begin with a First TimeStep")
	}

	// Counters survive the return to start
	if snapshot.Stats.Episodes != 1 || snapshot.Stats.Steps != 1 {
		t.Errorf("stats %v", snapshot.Stats)
	}
}

func TestAdvanceTimeWhileActive(t *testing.T) {
	s := newSession(t, &explorer{environment.Right})
	s.Step()

	snapshot := s.AdvanceTime(time.Hour)
	if snapshot.Phase != Active || len(snapshot.Trajectory) != 1 {
		t.Error("AdvanceTime should do nothing while active")
	}
}

func TestTick(t *testing.T) {
	s := newSession(t, &explorer{environment.Right})

	if snapshot := s.Tick(DefaultStepInterval); snapshot.Stats.Steps != 0 {
		t.Error("a paused session should not be stepped")
	}

	if !s.ToggleRun().Running {
		t.Fatal("ToggleRun should start the session")
	}
	if snapshot := s.Tick(DefaultStepInterval); snapshot.Stats.Steps != 1 {
		t.Error("a running session should be stepped")
	}

	// Settling time passes even while paused
	s.Place(environment.Position{Row: 4, Col: 3})
	s.Tick(DefaultStepInterval)
	if s.Phase() != Settling {
		t.Fatal("session should be settling after reaching the gem")
	}
	s.ToggleRun()
	for i := 0; i < 4; i++ {
		s.Tick(DefaultStepInterval)
	}
	if s.Phase() != Active || s.Stats().Steps != 2 {
		t.Errorf("Phase = %v, Steps = %d after settling", s.Phase(),
			s.Stats().Steps)
	}
}

func TestReset(t *testing.T) {
	s := newSession(t, policy.NewSource(1))
	s.ToggleRun()

	for s.Stats().Episodes < 3 {
		s.Step()
		s.AdvanceTime(time.Second)
	}
	if !s.ShowOptimalPath().ShowOptimalPath {
		t.Fatal("optimal path should be visible after learning")
	}
	s.Step()
	s.SaveCurrentPath()

	snapshot := s.Reset()

	if snapshot.Stats.Steps != 0 || snapshot.Stats.Episodes != 0 ||
		snapshot.Stats.CumulativeReward != 0 {
		t.Errorf("counters not reset: %v", snapshot.Stats)
	}
	if snapshot.Stats.Epsilon != 0.2 {
		t.Errorf("Epsilon = %v, want 0.2", snapshot.Stats.Epsilon)
	}
	if !math.IsInf(snapshot.Stats.BestEpisodeReward, -1) {
		t.Errorf("BestEpisodeReward = %v, want -Inf",
			snapshot.Stats.BestEpisodeReward)
	}
	if snapshot.HasQTable || !s.QTable().Empty() {
		t.Error("Q-table should be discarded")
	}
	if snapshot.Phase != Active || snapshot.Running {
		t.Error("reset session should be active and paused")
	}
	if snapshot.Position != gridworld.StartPosition ||
		len(snapshot.Trajectory) != 0 || snapshot.OptimalPath != nil ||
		snapshot.ShowOptimalPath {
		t.Error("paths should be discarded")
	}
	if len(snapshot.SavedPaths) != 1 {
		t.Errorf("saved paths should be kept, got %d", len(snapshot.SavedPaths))
	}
}

func TestSaveCurrentPath(t *testing.T) {
	s := newSession(t, &explorer{environment.Right})

	if _, ok := s.SaveCurrentPath(); ok {
		t.Error("saving an empty trajectory should do nothing")
	}

	s.Step()
	s.Step()

	saved, ok := s.SaveCurrentPath()
	if !ok {
		t.Fatal("expected the trajectory to be saved")
	}
	if saved.Name != "Path 1" || len(saved.Steps) != 2 ||
		!near(saved.TotalReward, -0.2) || !saved.CapturedAt.Equal(epoch) {
		t.Errorf("saved path %+v", saved)
	}

	if _, ok := s.SaveCurrentPath(); ok {
		t.Error("saving again without new steps should do nothing")
	}
	if paths := s.SavedPaths(); len(paths) != 1 {
		t.Fatalf("%d saved paths, want 1", len(paths))
	}

	// Saved entries are not changed by later steps
	s.Step()
	if paths := s.SavedPaths(); len(paths[0].Steps) != 2 {
		t.Error("saved path was mutated by a later step")
	}

	saved, ok = s.SaveCurrentPath()
	if !ok || saved.Name != "Path 2" || len(saved.Steps) != 3 {
		t.Errorf("second save %+v, %v", saved, ok)
	}
}

func TestSaveAfterEpisodeReset(t *testing.T) {
	s := newSession(t, &explorer{environment.Down})
	s.Place(environment.Position{Row: 3, Col: 4})
	s.Step()
	s.AdvanceTime(time.Second)

	if _, ok := s.SaveCurrentPath(); ok {
		t.Error("trajectory is empty after returning to start")
	}
	if _, ok := s.SaveCurrentPath(); ok {
		t.Error("trajectory is empty after returning to start")
	}
	if len(s.SavedPaths()) != 0 {
		t.Error("nothing should have been saved")
	}
}

func TestOptimalPathVisibility(t *testing.T) {
	s := newSession(t, policy.NewSource(3))

	snapshot := s.ShowOptimalPath()
	if snapshot.ShowOptimalPath || snapshot.OptimalPath != nil {
		t.Error("ShowOptimalPath should do nothing with an empty table")
	}

	s.Step()
	snapshot = s.ShowOptimalPath()
	if !snapshot.ShowOptimalPath || !s.OptimalPathVisible() {
		t.Error("optimal path should be visible once something is learned")
	}
	if len(snapshot.OptimalPath) == 0 {
		t.Error("expected an optimal path")
	}
	if snapshot.OptimalPath[0] != gridworld.StartPosition {
		t.Errorf("optimal path starts at %v", snapshot.OptimalPath[0])
	}

	if s.HideOptimalPath().ShowOptimalPath || s.OptimalPathVisible() {
		t.Error("HideOptimalPath should hide the optimal path")
	}
}

func TestSetEpsilon(t *testing.T) {
	s := newSession(t, &explorer{})

	tests := []struct {
		epsilon, want float64
	}{
		{0.5, 0.5},
		{1.5, 1},
		{-0.1, 0},
	}

	for _, test := range tests {
		s.SetEpsilon(test.epsilon)
		if got := s.Stats().Epsilon; got != test.want {
			t.Errorf("SetEpsilon(%v) gave epsilon %v, want %v", test.epsilon,
				got, test.want)
		}
	}
}

func TestTimeStepFollowsEnvironment(t *testing.T) {
	s := newSession(t, &explorer{environment.Right})
	if step := s.TimeStep(); !step.First() || step.Number != 0 {
		t.Errorf("initial TimeStep %v", step)
	}

	s.Step()
	s.Step()
	step := s.TimeStep()
	if !step.Mid() || step.Number != 2 || step.Observation != 2 {
		t.Errorf("TimeStep after two steps %v", step)
	}

	s.Reset()
	if step := s.TimeStep(); !step.First() || step.Number != 0 {
		t.Errorf("TimeStep after reset %v", step)
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	s := newSession(t, &explorer{environment.Right})
	snapshot := s.Step()

	snapshot.Trajectory[0].Reward = 100
	snapshot.Grid[0][0] = gridworld.Gem
	if s.Trajectory(0)[0].Reward == 100 {
		t.Error("trajectory shares memory with a snapshot")
	}
	if s.Grid().Kind(gridworld.StartPosition) != gridworld.Start {
		t.Error("grid shares memory with a snapshot")
	}

	table := s.QTable()
	table.Set(0, environment.Up, 42)
	if s.QTable().At(0, environment.Up) == 42 {
		t.Error("QTable shares memory with the session")
	}
}

func TestTrajectoryCap(t *testing.T) {
	c := DefaultConfig()
	c.PathCap = 2
	s, err := NewWithSource(c, &explorer{environment.Right}, time.Now)
	if err != nil {
		t.Fatal(err)
	}

	s.Step()
	s.Step()
	s.Step()

	if n := len(s.Trajectory(0)); n != 2 {
		t.Errorf("Trajectory(0) has %d steps, want 2", n)
	}
	if n := len(s.Trajectory(10)); n != 3 {
		t.Errorf("Trajectory(10) has %d steps, want 3", n)
	}
}

func TestLearning(t *testing.T) {
	s := newSession(t, policy.NewSource(42))
	returns := trackers.NewReturn("unused")
	s.Register(returns)

	epsilon := s.Stats().Epsilon
	for s.Stats().Episodes < 500 {
		s.Step()
		if s.Phase() == Settling {
			next := s.Stats().Epsilon
			if next > epsilon || next < 0.01 {
				t.Fatalf("epsilon went from %v to %v", epsilon, next)
			}
			epsilon = next
			s.AdvanceTime(time.Second)
		}
	}

	table := s.QTable()
	states, actions := table.Dims()
	for i := 0; i < states; i++ {
		for j := 0; j < actions; j++ {
			if v := table.Matrix().At(i, j); math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("Q(%d, %d) = %v", i, j, v)
			}
		}
	}

	if len(returns.Returns()) != 500 {
		t.Errorf("tracked %d returns, want 500", len(returns.Returns()))
	}
	if best := s.Stats().BestEpisodeReward; best < returns.Mean(0) {
		t.Errorf("best episode %v below mean return %v", best, returns.Mean(0))
	}
}

func BenchmarkSessionStep(b *testing.B) {
	s, err := New(DefaultConfig())
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Step()
		s.AdvanceTime(time.Second)
	}
}
