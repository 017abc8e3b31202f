package main

import (
	"github.com/spf13/cobra"

	"github.com/mfukuda/recall/internal/cli"
	"github.com/mfukuda/recall/internal/review"
)

func newReviewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "review",
		Short: "Start an interactive review session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			items, events, closeStores, err := openStores(cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = closeStores()
			}()

			params := cfg.Scheduler.SchedulerParams()
			sessionCLI := cli.NewReviewSessionCLI(
				review.NewProcessor(items, events, params),
				review.NewQueueManager(items, params, nil),
				cfg.Scheduler.SessionConfig(),
			)
			return sessionCLI.Run(cmd.Context())
		},
	}
}
