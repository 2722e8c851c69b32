// Package cli implements the glide command line.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// BuildInfo identifies the binary.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Run executes the glide CLI. It returns a process exit code.
func Run(args []string, info BuildInfo) int {
	root := buildRootCommand(info)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		var exitErr exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

func buildRootCommand(info BuildInfo) *cobra.Command {
	root := &cobra.Command{
		Use:   "glide",
		Short: "Touch-scroll motion engine: simulator and terminal demo",
		Long: `glide - inertial scrolling with rubber-band bounce

Simulate:
  glide simulate                       Fling with default gesture
  glide simulate --distance 400 --json Per-frame offsets as JSON lines

Demo:
  glide demo                           Drag a list with the mouse

Config:
  glide config show                    Print effective settings
  glide config init                    Write defaults to config.json`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.Version = info.Version
	root.SetVersionTemplate("glide {{.Version}}\n")
	root.SetHelpCommand(&cobra.Command{Hidden: true})
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(buildSimulateCommand())
	root.AddCommand(buildDemoCommand(info))
	root.AddCommand(buildConfigCommand())
	root.AddCommand(buildVersionCommand(info))
	root.AddCommand(buildCompletionCommand())

	registerCompletions(root)
	return root
}

// exitError lets commands return a specific exit code without printing an error.
type exitError struct {
	code int
}

func (e exitError) Error() string {
	return fmt.Sprintf("exit with code %d", e.code)
}
