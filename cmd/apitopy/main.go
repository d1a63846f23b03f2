package main

import (
	"os"

	"github.com/wesleyorama2/apitopy/internal/cli"
	"github.com/wesleyorama2/apitopy/internal/logging"
)

// Main is the entry point for the application
// It's exported to make it testable
func Main() int {
	// Default logger for anything that runs before a command builds its own
	cleanup, err := logging.Setup(logging.DefaultConfig())
	if err == nil {
		defer cleanup()
	}

	if err := cli.Execute(); err != nil {
		return 1
	}
	return 0
}

func main() {
	os.Exit(Main())
}
