package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/anvil/internal/cli"
	"github.com/arthur-debert/anvil/pkg/style"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		renderer := style.NewRenderer(style.FormatAuto.Resolve(os.Stderr))
		fmt.Fprintln(os.Stderr, renderer.RenderError(err))

		// Show the full help for the command that failed
		fmt.Fprintln(os.Stderr)
		_ = rootCmd.Help()

		os.Exit(1)
	}
}
