package cli

import (
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Debug      bool

	// FS is the filesystem holding the config file. Nil means the OS filesystem.
	FS afero.Fs
}

// ReadOptions holds the flags of the reader itself.
type ReadOptions struct {
	Rate    time.Duration
	Watch   bool
	LogFile string
}

// NewRootCommand creates the root command for the sreader CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	readOpts := &ReadOptions{}

	cmd := &cobra.Command{
		Use:   "sreader [corpus]",
		Short: "sreader - terminal speed reader",
		Long: `Step through a text one word at a time, or let it play at a fixed rate.

With a corpus argument the file is loaded on start; press l to load it
again and ? for the key bindings.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReader(cmd, opts, readOpts, args)
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "config file (default is the user config dir)")
	cmd.PersistentFlags().BoolVar(&opts.Debug, "debug", false, "log at debug level")

	cmd.Flags().DurationVarP(&readOpts.Rate, "rate", "r", 0, "delay between words while playing, e.g. 200ms")
	cmd.Flags().BoolVarP(&readOpts.Watch, "watch", "w", false, "reload the corpus when the file changes")
	cmd.Flags().StringVar(&readOpts.LogFile, "log-file", "", "log file path")

	// Add subcommands
	cmd.AddCommand(NewConfigCommand(opts))
	cmd.AddCommand(NewDecodeCommand())

	return cmd
}
