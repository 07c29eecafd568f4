package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/agiangrant/flusty"
)

func newInitCommand(g *globals) *cobra.Command {
	var (
		name  string
		force bool
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default flusty.toml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := g.workDir()
			if err != nil {
				return err
			}

			configPath := filepath.Join(dir, flusty.ConfigFile)
			if _, err := os.Stat(configPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", flusty.ConfigFile)
			}

			cfg := flusty.DefaultConfig()
			if name != "" {
				cfg.Native.Name = name
			}
			if err := flusty.SaveConfig(dir, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", flusty.ConfigFile)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "crate library `name`")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing flusty.toml")
	return cmd
}
