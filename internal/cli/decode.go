package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"sreader/internal/action"
)

// NewDecodeCommand creates the decode command.
func NewDecodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <action>...",
		Short: "Check serialized actions as used in key bindings",
		Long: `Decode each argument the way [keybindings] values are decoded and print
its canonical form. Fails if any argument does not decode.`,
		Example:      `  sreader decode 'ScheduleAdvance(Forward, 3)' 'SetRate(200ms)'`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var errs []error
			for _, arg := range args {
				a, err := action.Parse(arg)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s\t%v\n", arg, err)
					errs = append(errs, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", arg, a)
			}
			if len(errs) > 0 {
				return fmt.Errorf("%d of %d actions failed to decode: %w", len(errs), len(args), errors.Join(errs...))
			}
			return nil
		},
	}
}
