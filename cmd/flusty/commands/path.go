package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/agiangrant/flusty"
)

func newPathCommand(g *globals) *cobra.Command {
	var goos string
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print the path of the native library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.config()
			if err != nil {
				return err
			}
			b, logger, err := g.bindings(cfg, flusty.WithGOOS(goos))
			if err != nil {
				return err
			}
			defer logger.Sync()

			fmt.Fprintln(cmd.OutOrStdout(), b.Path())
			return nil
		},
	}
	cmd.Flags().StringVar(&goos, "os", runtime.GOOS, "target operating `system`")
	return cmd
}
