package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/samuelfneumann/gemgrid/experiment"
	"github.com/samuelfneumann/gemgrid/experiment/checkpointer"
	"github.com/samuelfneumann/gemgrid/experiment/trackers"
	"github.com/samuelfneumann/gemgrid/render"
	"github.com/samuelfneumann/gemgrid/trajectory"
	"github.com/samuelfneumann/gemgrid/utils/progressbar"
)

type trainFlags struct {
	sessionFlags
	episodes        int
	returns         string
	lengths         string
	png             string
	chart           string
	checkpoint      string
	checkpointEvery int
	resume          string
}

// TrainCommand returns the command which trains an agent headless
func TrainCommand() *cobra.Command {
	var f trainFlags

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train an agent as fast as possible and report what it learned",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := f.load(cmd)
			if err != nil {
				return err
			}
			return train(cmd, c, f)
		},
	}

	f.register(cmd)
	cmd.Flags().IntVar(&f.episodes, "episodes", 500, "Number of episodes")
	cmd.Flags().StringVar(&f.returns, "returns", "",
		"File to save episodic returns to")
	cmd.Flags().StringVar(&f.lengths, "lengths", "",
		"File to save episode lengths to")
	cmd.Flags().StringVar(&f.png, "png", "",
		"File to save a PNG of the learned optimal path to")
	cmd.Flags().StringVar(&f.chart, "chart", "",
		"File to save an HTML chart of episodic returns to")
	cmd.Flags().StringVar(&f.checkpoint, "checkpoint", "",
		"Filename prefix of Q-table checkpoints")
	cmd.Flags().IntVar(&f.checkpointEvery, "checkpoint-every", 100,
		"Number of episodes between Q-table checkpoints")
	cmd.Flags().StringVar(&f.resume, "resume", "",
		"Q-table checkpoint to resume training from")
	return cmd
}

func train(cmd *cobra.Command, c experiment.Config, f trainFlags) error {
	if f.episodes < 1 {
		return fmt.Errorf("train: episodes must be positive")
	}

	s, err := experiment.New(c)
	if err != nil {
		return fmt.Errorf("train: %w", err)
	}

	if f.resume != "" {
		if err := s.LoadQTable(f.resume); err != nil {
			return fmt.Errorf("train: %w", err)
		}
		log.Printf("resumed from %v", f.resume)
	}

	returns := trackers.NewReturn(f.returns)
	s.Register(returns)
	var lengths *trackers.EpisodeLength
	if f.lengths != "" {
		lengths = trackers.NewEpisodeLength(f.lengths)
		s.Register(lengths)
	}

	o := experiment.NewOnline(s, 0)
	if f.checkpoint != "" {
		o.RegisterCheckpointer(checkpointer.NewNEpisode(f.checkpointEvery,
			s, checkpointer.FilenameEnumerator(0, f.checkpoint,
				".bin")))
	}

	out := cmd.OutOrStdout()
	log.Printf("training for %d episodes with seed %d", f.episodes, c.Seed)
	bar := progressbar.NewManualProgressBar(out, 40, f.episodes)
	err = o.RunEpisodes(f.episodes, func(int) {
		bar.Increment()
		bar.SetStatus("mean return %.2f", returns.Mean(render.DefaultWindow))
		bar.Display()
	})
	bar.Close()
	if err != nil {
		return fmt.Errorf("train: %w", err)
	}

	snapshot := s.ShowOptimalPath()
	terminal := render.NewTerminal(!f.noColor)
	fmt.Fprintln(out, terminal.Stats(snapshot))
	fmt.Fprintf(out, "\nGreedy policy:\n%v", terminal.Policy(s.Grid(),
		s.QTable()))
	fmt.Fprintf(out, "\nState values:\n%v", terminal.Values(s.QTable()))
	fmt.Fprintf(out, "\nOptimal path (%d positions, complete: %v):\n%v",
		len(snapshot.OptimalPath),
		trajectory.Complete(s.Grid(), snapshot.OptimalPath),
		terminal.Grid(snapshot))

	if f.returns != "" {
		if err := returns.Save(); err != nil {
			return fmt.Errorf("train: %w", err)
		}
		log.Printf("saved returns to %v", f.returns)
	}
	if lengths != nil {
		if err := lengths.Save(); err != nil {
			return fmt.Errorf("train: %w", err)
		}
		log.Printf("saved episode lengths to %v", f.lengths)
	}
	if f.png != "" {
		if err := render.SavePNG(f.png, snapshot, 0); err != nil {
			return fmt.Errorf("train: %w", err)
		}
		log.Printf("saved optimal path image to %v", f.png)
	}
	if f.chart != "" {
		err := render.SaveReturnChart(f.chart, returns.Returns(),
			render.DefaultWindow)
		if err != nil {
			return fmt.Errorf("train: %w", err)
		}
		log.Printf("saved return chart to %v", f.chart)
	}

	return nil
}
