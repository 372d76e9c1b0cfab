package checkpointer

import ts "github.com/samuelfneumann/gemgrid/timestep"

// nEpisode implements checkpointing every N completed episodes
type nEpisode struct {
	interval int
	episodes int
	object   Serializable // Object to save

	// filename returns the string filename of the file to save the object
	// in.
	//
	// If each serialized object should be saved in a separate file with
	// each file having an incremented number as a suffix (e.g.
	// table1.bin, table2.bin, ..., tableK.bin), then use
	// FilenameEnumerator. If the names do not matter, use FileTimer:
	//
	// n := NewNEpisode(10, table, FileTimer("table", ".bin"))
	filename func() string
}

// NewNEpisode returns a checkpointer that checkpoints object every n
// completed episodes. If n < 1, every episode is checkpointed.
func NewNEpisode(n int, object Serializable,
	filename func() string) Checkpointer {
	if n < 1 {
		n = 1
	}
	return &nEpisode{
		interval: n,
		object:   object,
		filename: filename,
	}
}

// Checkpoint counts completed episodes and saves the object each time
// the count reaches a multiple of the interval
func (n *nEpisode) Checkpoint(t ts.TimeStep) error {
	if !t.Last() {
		return nil
	}

	n.episodes++
	if n.episodes%n.interval == 0 {
		return n.object.Save(n.filename())
	}
	return nil
}
