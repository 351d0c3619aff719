package main

import (
	"os"

	"github.com/grokify/changelogconductor/cmd/changelogconductor/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
