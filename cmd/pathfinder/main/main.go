package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/pathfinder/cmd/pathfinder"
	"github.com/arthur-debert/pathfinder/pkg/ui"
)

func main() {
	rootCmd := pathfinder.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		styled := ui.DetectFormat(os.Stderr) == ui.FormatTerminal
		styles, serr := ui.LoadStyles(os.Stderr, !styled)
		msg := fmt.Sprintf("Error: %v", err)
		if serr == nil {
			msg = styles.Render("Error", msg)
		}
		fmt.Fprintln(os.Stderr, msg)
		os.Exit(1)
	}
}
