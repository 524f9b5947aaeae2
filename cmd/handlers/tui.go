package handlers

import (
	"context"

	"github.com/spf13/cobra"

	"trendy/internal/core"
	"trendy/internal/pipeline"
	"trendy/internal/tui"
)

// NewTUICmd creates the TUI command
func NewTUICmd(root *rootOptions) *cobra.Command {
	var mode, city string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Launch the interactive terminal interface",
		Long:  `Press enter to generate a set of reports, browse them with the arrow keys, press enter again to regenerate, q to quit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			cfg, err := root.load(runOverrides(mode, city))
			if err != nil {
				return err
			}
			runMode, err := core.ParseMode(cfg.App.Mode)
			if err != nil {
				return err
			}

			states := tui.NewStates()
			p, err := pipeline.NewBuilder(cfg).WithObserver(states.Observer()).Build(ctx)
			if err != nil {
				return err
			}

			model := tui.New(p, states, pipeline.RunOptions{Mode: runMode, City: cfg.App.City}, cfg.App.RunTimeout)
			return tui.Start(model)
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "", "grounded or ungrounded (default from config)")
	cmd.Flags().StringVarP(&city, "city", "c", "", "target city (default from config)")

	return cmd
}
