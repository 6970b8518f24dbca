package main

import (
	"context"
	"fmt"
	"os"

	"github.com/guiaemprende/backend/internal/config"
	"github.com/guiaemprende/backend/internal/worker"
	"github.com/urfave/cli/v3"
)

// Version information (set via ldflags during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	cmd := &cli.Command{
		Name:    "worker",
		Usage:   "Email worker consuming the lead-capture job queue",
		Version: fmt.Sprintf("%s (built %s)", Version, BuildTime),
		Flags:   config.Flags(),
		Action:  worker.Run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
