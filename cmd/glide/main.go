package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/x/term"

	"github.com/andyrewlee/glide/internal/app"
	"github.com/andyrewlee/glide/internal/cli"
	"github.com/andyrewlee/glide/internal/config"
	"github.com/andyrewlee/glide/internal/logging"
	"github.com/andyrewlee/glide/internal/perf"
)

// Version info set by GoReleaser via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	info := cli.BuildInfo{Version: version, Commit: commit, Date: date}

	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Printf("glide %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	launchTUI := shouldLaunchTUI(
		term.IsTerminal(os.Stdin.Fd()),
		term.IsTerminal(os.Stdout.Fd()),
	)
	if len(os.Args) > 1 || !launchTUI {
		os.Exit(runCLI(os.Args[1:], info))
	}
	os.Exit(runTUI())
}

func shouldLaunchTUI(stdinIsTTY, stdoutIsTTY bool) bool {
	return stdinIsTTY && stdoutIsTTY
}

func runCLI(args []string, info cli.BuildInfo) int {
	cfg, err := config.Load()
	if err == nil {
		initLogging(cfg)
		defer logging.Close()
	}
	return cli.Run(args, info)
}

func runTUI() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return 1
	}
	initLogging(cfg)
	defer logging.Close()
	defer perf.Flush("exit")

	logging.Info("Starting glide %s", version)
	if err := app.Run(cfg, version); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		return 1
	}
	return 0
}

func initLogging(cfg *config.Config) {
	if err := logging.Initialize(cfg.Paths.LogsDir, logging.ParseLevel(cfg.LogLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not initialize logging: %v\n", err)
	}
}
