// Package commands implements the flusty CLI commands.
package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agiangrant/flusty"
	"github.com/agiangrant/flusty/internal/log"
)

// globals holds the persistent flags shared by all commands.
type globals struct {
	dir     string
	lib     string
	verbose bool
}

// NewRootCommand returns the flusty command tree.
func NewRootCommand(version string) *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:   "flusty",
		Short: "Inspect and call the project's native Rust library",
		Long: `flusty locates the shared library built from the project's Rust crate,
opens it and calls its exported functions.

The library is expected at native/target/release under the project root,
named libnative.so, libnative.dylib or native.dll depending on the platform.
The project root is the nearest directory containing flusty.toml, or the
working directory.

Examples:
  flusty path                 # Where the library is expected
  flusty path --os windows    # Where it would be on Windows
  flusty check                # Open it and resolve the configured symbols
  flusty hello                # Call hello_world
  flusty init                 # Write a default flusty.toml`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.PersistentFlags().StringVarP(&g.dir, "dir", "C", "", "run as if started in `dir`")
	root.PersistentFlags().StringVar(&g.lib, "lib", "", "library `path`, overrides flusty.toml")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "verbose debug output")

	root.AddCommand(
		newPathCommand(g),
		newCheckCommand(g),
		newHelloCommand(g),
		newInitCommand(g),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "flusty version %s\n", version)
			},
		},
	)
	return root
}

// workDir returns the directory the command operates in.
func (g *globals) workDir() (string, error) {
	if g.dir != "" {
		return filepath.Abs(g.dir)
	}
	return os.Getwd()
}

// config loads flusty.toml from the project root and applies flags.
func (g *globals) config() (flusty.Config, error) {
	dir, err := g.workDir()
	if err != nil {
		return flusty.Config{}, err
	}
	cfg, err := flusty.LoadConfig(flusty.FindRoot(dir))
	if err != nil {
		return cfg, err
	}
	if g.lib != "" {
		lib := g.lib
		if !filepath.IsAbs(lib) {
			lib = filepath.Join(dir, lib)
		}
		cfg.Native.Path = lib
	}
	return cfg, nil
}

func (g *globals) logger(cfg flusty.Config) *zap.Logger {
	return log.New(g.verbose || cfg.Log.Debug)
}

// bindings builds Bindings and their logger from cfg.
func (g *globals) bindings(cfg flusty.Config, opts ...flusty.Option) (*flusty.Bindings, *zap.Logger, error) {
	logger := g.logger(cfg)
	b, err := flusty.New(cfg, append([]flusty.Option{flusty.WithLogger(logger)}, opts...)...)
	if err != nil {
		return nil, nil, err
	}
	return b, logger, nil
}
