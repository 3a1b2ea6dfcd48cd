package main

import (
	"fmt"
	"os"

	"tailfront/internal/cli"
	"tailfront/internal/report"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cli.SetVersion(version)
	if err := cli.Execute(); err != nil {
		// Interrupts end the process quietly
		if cli.IsInterrupt(err) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, report.Format(report.LevelFailed, err.Error()))
		os.Exit(1)
	}
}
