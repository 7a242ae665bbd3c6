package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "reportctl",
		Short:         "Generate, sanitize and compile grant reports offline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(generateCmd(), sanitizeCmd(), assembleCmd(), compileCmd())
	return root
}
