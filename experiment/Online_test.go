package experiment

import (
	"path/filepath"
	"testing"

	"github.com/samuelfneumann/gemgrid/agent/qlearning"
	"github.com/samuelfneumann/gemgrid/experiment/checkpointer"
	"github.com/samuelfneumann/gemgrid/experiment/trackers"
)

func TestOnlineRunEpisodes(t *testing.T) {
	s, err := New(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	returnsFile := filepath.Join(dir, "returns.bin")
	lengthsFile := filepath.Join(dir, "lengths.bin")
	s.Register(trackers.NewReturn(returnsFile))
	s.Register(trackers.NewEpisodeLength(lengthsFile))

	tablePrefix := filepath.Join(dir, "table")
	o := NewOnline(s, 0)
	o.RegisterCheckpointer(checkpointer.NewNEpisode(10, s,
		checkpointer.FilenameEnumerator(0, tablePrefix, ".bin")))

	var finished []int
	if err := o.RunEpisodes(30, func(i int) {
		finished = append(finished, i)
	}); err != nil {
		t.Fatal(err)
	}

	if len(finished) != 30 || finished[29] != 30 {
		t.Errorf("after called with %v", finished)
	}
	if episodes := o.Stats().Episodes; episodes != 30 {
		t.Errorf("Episodes = %d, want 30", episodes)
	}
	if o.Phase() != Active {
		t.Error("RunEpisodes should skip the final settle phase")
	}
	if uint(o.Stats().Steps) != o.Steps() {
		t.Errorf("session steps %d, experiment steps %d", o.Stats().Steps,
			o.Steps())
	}

	if err := o.SaveTrackers(); err != nil {
		t.Fatal(err)
	}
	returns, err := trackers.LoadData(returnsFile)
	if err != nil {
		t.Fatal(err)
	}
	lengths, err := trackers.LoadLengths(lengthsFile)
	if err != nil {
		t.Fatal(err)
	}
	if len(returns) != 30 || len(lengths) != 30 {
		t.Errorf("saved %d returns and %d lengths, want 30", len(returns),
			len(lengths))
	}

	total := 0
	for _, length := range lengths {
		total += length
	}
	if total != o.Stats().Steps {
		t.Errorf("episode lengths sum to %d, want %d", total, o.Stats().Steps)
	}

	// Three checkpoints of the table were written
	for _, name := range []string{"table1.bin", "table2.bin", "table3.bin"} {
		table, err := qlearning.LoadQTable(filepath.Join(dir, name))
		if err != nil {
			t.Fatal(err)
		}
		if table.Empty() {
			t.Errorf("checkpoint %v is empty", name)
		}
	}
}

func TestOnlineRun(t *testing.T) {
	s, err := New(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	o := NewOnline(s, 250)
	if err := o.Run(); err != nil {
		t.Fatal(err)
	}
	if o.Steps() != 250 || o.Stats().Steps != 250 {
		t.Errorf("ran %d steps, want 250", o.Steps())
	}

	ended, err := o.RunEpisode()
	if err != nil || !ended {
		t.Errorf("RunEpisode past the limit = %v, %v", ended, err)
	}
	if o.Steps() != 250 {
		t.Error("no steps should run past the limit")
	}
}

func TestOnlineRunUnbounded(t *testing.T) {
	s, err := New(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if err := NewOnline(s, 0).Run(); err == nil {
		t.Error("expected error running an unbounded experiment")
	}
}

// runExperiment runs e and saves its trackers
func runExperiment(e Experiment) error {
	if err := e.Run(); err != nil {
		return err
	}
	return e.SaveTrackers()
}

func TestOnlineAsExperiment(t *testing.T) {
	s, err := New(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	filename := filepath.Join(t.TempDir(), "lengths.bin")
	o := NewOnline(s, 300)
	o.Register(trackers.NewEpisodeLength(filename))

	if err := runExperiment(o); err != nil {
		t.Fatal(err)
	}
	if o.Steps() != 300 {
		t.Errorf("ran %d steps, want 300", o.Steps())
	}

	lengths, err := trackers.LoadLengths(filename)
	if err != nil {
		t.Fatal(err)
	}
	total := 0
	for _, l := range lengths {
		total += l
	}
	if total > 300 {
		t.Errorf("episode lengths sum to %d, more than the steps run", total)
	}
}
