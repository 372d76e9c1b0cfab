package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/samuelfneumann/gemgrid/experiment"
	"github.com/samuelfneumann/gemgrid/render"
)

type playFlags struct {
	sessionFlags
	episodes int
	interval time.Duration
}

// PlayCommand returns the command which animates an agent learning in
// the terminal
func PlayCommand() *cobra.Command {
	var f playFlags

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Watch an agent learn, one step at a time",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := f.load(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("interval") {
				c.StepInterval = experiment.Duration(f.interval)
			}
			return play(cmd, c, f)
		},
	}

	f.register(cmd)
	cmd.Flags().IntVar(&f.episodes, "episodes", 5, "Number of episodes")
	cmd.Flags().DurationVar(&f.interval, "interval",
		experiment.DefaultStepInterval, "Time between steps")
	return cmd
}

func play(cmd *cobra.Command, c experiment.Config, f playFlags) error {
	if f.episodes < 1 {
		return fmt.Errorf("play: episodes must be positive")
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("play: %w", err)
	}

	s, err := experiment.New(c)
	if err != nil {
		return fmt.Errorf("play: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// One save per episode, plus starting the run
	commands := make(chan experiment.Command, f.episodes+1)
	commands <- func(s *experiment.Session) { s.ToggleRun() }

	out := cmd.OutOrStdout()
	terminal := render.NewTerminal(!f.noColor)
	saved := 0

	var last experiment.Snapshot
	for snapshot := range experiment.Drive(ctx, s,
		time.Duration(c.StepInterval), commands) {
		last = snapshot

		fmt.Fprint(out, "\033[H\033[2J")
		fmt.Fprint(out, terminal.Grid(snapshot))
		fmt.Fprintln(out, terminal.Stats(snapshot))

		// Save each finished episode while the agent rests on the
		// terminal cell
		if snapshot.Phase == experiment.Settling &&
			snapshot.Stats.Episodes > saved {
			saved = snapshot.Stats.Episodes
			commands <- func(s *experiment.Session) {
				s.SaveCurrentPath()
				s.ShowOptimalPath()
			}
		}

		if snapshot.Stats.Episodes >= f.episodes &&
			snapshot.Phase == experiment.Active {
			cancel()
		}
	}

	log.Printf("finished %d episodes", last.Stats.Episodes)
	fmt.Fprintf(out, "\nSaved paths:\n%v", terminal.SavedPaths(last))
	return nil
}
