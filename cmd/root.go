// Package cmd implements the gemgrid command line interface
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/samuelfneumann/gemgrid/experiment"
)

// RootCommand returns the gemgrid command with all of its subcommands
func RootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "gemgrid",
		Short:         "Q-Learning on a 5x5 gem and skull gridworld",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(TrainCommand())
	cmd.AddCommand(PlayCommand())
	return cmd
}

// Execute runs the gemgrid command
func Execute() error {
	return RootCommand().Execute()
}

// sessionFlags are the flags which configure a Session
type sessionFlags struct {
	config  string
	seed    uint64
	noColor bool
}

func (f *sessionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.config, "config", "", "JSON session config file")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "Seed for exploration")
	cmd.Flags().BoolVar(&f.noColor, "no-color", false,
		"Disable coloured output")
}

// load returns the session config given by the flags. Flags override
// values in the config file.
func (f *sessionFlags) load(cmd *cobra.Command) (experiment.Config, error) {
	c := experiment.DefaultConfig()
	if f.config != "" {
		var err error
		if c, err = experiment.LoadConfig(f.config); err != nil {
			return c, err
		}
	}

	if cmd.Flags().Changed("seed") {
		c.Seed = f.seed
	}
	return c, c.Validate()
}
