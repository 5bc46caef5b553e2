package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/pathfinder/cmd/pathfinder"
	"github.com/arthur-debert/pathfinder/internal/version"
)

func main() {
	rootCmd := pathfinder.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "PATHFINDER",
		Section: "1",
		Source:  "pathfinder " + version.Version,
		Manual:  "pathfinder manual",
	}

	err := doc.GenMan(rootCmd, header, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
