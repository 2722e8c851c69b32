package cli

import (
	"github.com/spf13/cobra"

	"github.com/andyrewlee/glide/internal/app"
	"github.com/andyrewlee/glide/internal/config"
)

func buildDemoCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Open the terminal scrolling demo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return app.Run(cfg, info.Version)
		},
	}
}
