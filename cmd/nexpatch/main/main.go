package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/nexpatch/cmd/nexpatch"
	"github.com/arthur-debert/nexpatch/pkg/ui/styles"
)

func main() {
	rootCmd := nexpatch.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// Print the error in red
		fmt.Fprintln(os.Stderr, styles.Default().Render("Error", fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
