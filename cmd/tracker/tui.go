package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KirkDiggler/artifact-tracker/internal/tui"
)

func newTUICmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Edit the roster in an interactive terminal screen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Anything below error would draw over the screen
			o.logger = o.logger.WithOptions(zap.IncreaseLevel(zap.ErrorLevel))

			return withApp(cmd, o, func(ctx context.Context, a *app) error {
				return tui.Run(ctx, &tui.Config{
					Service: a.tracker,
					Logger:  o.logger.Named("tui"),
				})
			})
		},
	}
}
