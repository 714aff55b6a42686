package main

import (
	"context"
	"fmt"
	"os"

	"taskmaster/internal/cli"
	"taskmaster/internal/config"
	"taskmaster/internal/logging"
)

func main() {
	// Defaults, then .env, then TM_* variables. Flags are applied by the root command.
	cfg, err := config.NewLoader().Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	root := cli.NewRootCommand(cfg, buildAPI)

	if err := root.Execute(context.Background(), os.Args[1:]); err != nil {
		logging.Debugf("command failed: %+v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
