package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/alekulyn/limo/cmd/limo"
	"github.com/alekulyn/limo/internal/version"
)

// Writes one roff page per command into the directory given as the first
// argument, or the root page alone to stdout without one.
func main() {
	rootCmd := limo.NewRootCmd()
	header := &doc.GenManHeader{
		Title:   "LIMO",
		Section: "1",
		Source:  "limo " + version.Version,
		Manual:  "limo manual",
	}

	var err error
	if len(os.Args) > 1 {
		if err = os.MkdirAll(os.Args[1], 0755); err == nil {
			err = doc.GenManTree(rootCmd, header, os.Args[1])
		}
	} else {
		err = doc.GenMan(rootCmd, header, os.Stdout)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
