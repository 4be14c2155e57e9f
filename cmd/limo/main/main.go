package main

import (
	"fmt"
	"os"

	"github.com/alekulyn/limo/cmd/limo"
	"github.com/alekulyn/limo/pkg/style"
)

func main() {
	rootCmd := limo.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, style.RenderError(err))
		os.Exit(1)
	}
}
