package commands

import (
	"github.com/spf13/cobra"
)

func newHelloCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "hello",
		Short: "Call the native hello_world function",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.config()
			if err != nil {
				return err
			}
			b, logger, err := g.bindings(cfg)
			if err != nil {
				return err
			}
			defer logger.Sync()

			return b.HelloWorld()
		},
	}
}
