package cli

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"sreader/internal/config"
)

// NewConfigCommand creates the config command group.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:          "init",
		Short:        "Write the default config file",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := rootOpts.configService()
			exists, err := afero.Exists(rootOpts.fs(), svc.Path())
			if err != nil {
				return fmt.Errorf("check %s: %w", svc.Path(), err)
			}
			if exists && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", svc.Path())
			}
			if err := svc.Save(config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", svc.Path())
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), rootOpts.configService().Path())
		},
	}

	cmd.AddCommand(initCmd, pathCmd)
	return cmd
}

func (o *RootOptions) fs() afero.Fs {
	if o.FS == nil {
		o.FS = afero.NewOsFs()
	}
	return o.FS
}

func (o *RootOptions) configService() config.ConfigService {
	return config.NewConfigService(o.fs(), o.ConfigPath)
}
