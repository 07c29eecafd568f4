package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agiangrant/flusty/internal/log"
)

func newCheckCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "check [symbol...]",
		Short: "Open the native library and resolve symbols",
		Long: `Open the native library and resolve each symbol. Without arguments the
symbols listed in flusty.toml are checked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.config()
			if err != nil {
				return err
			}
			symbols := args
			if len(symbols) == 0 {
				symbols = cfg.Native.Symbols
			}

			b, logger, err := g.bindings(cfg)
			if err != nil {
				return err
			}
			defer logger.Sync()

			addrs, err := b.Resolve(symbols...)
			out := cmd.OutOrStdout()
			for _, name := range symbols {
				if addr, ok := addrs[name]; ok {
					fmt.Fprintf(out, "ok %s %s\n", name, log.Hex(addr))
				}
			}
			return err
		},
	}
}
