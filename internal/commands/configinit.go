package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"depositrecon/internal/config"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const defaultConfigFile = "depositrecon.yaml"

func newConfigCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the depositrecon.yaml file",
		Args:  cobra.NoArgs,
		// The file may not exist yet, so skip the root's config loading.
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
	}

	cmd.AddCommand(newConfigInitCommand(opts))

	return cmd
}

func newConfigInitCommand(opts *globalOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file holding the defaults",
		Long:  "Write the default configuration to --config, or ./" + defaultConfigFile + " when unset.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := opts.configPath
			if path == "" {
				path = defaultConfigFile
			}

			if !force {
				if _, err := os.Stat(path); err == nil {
					return errors.Errorf("%s already exists, use --force to overwrite", path)
				}
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return errors.Wrap(err, "creating config directory")
			}
			if err := config.Save(path, config.Default()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}
