package main

import (
	"fmt"
	"os"

	"github.com/spendscope-dev/spendscope/internal/commands"
	"github.com/spendscope-dev/spendscope/internal/report"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, report.FormatError(os.Stderr, err.Error()))
		os.Exit(1)
	}
}
