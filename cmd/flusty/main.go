// Command flusty inspects and calls the project's native Rust library.
package main

import (
	"fmt"
	"os"

	"github.com/agiangrant/flusty/cmd/flusty/commands"
)

const version = "0.1.0"

func main() {
	os.Exit(Main())
}

// Main runs the CLI and returns the process exit status.
func Main() int {
	if err := commands.NewRootCommand(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
