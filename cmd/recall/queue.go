package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mfukuda/recall/internal/review"
)

func newQueueCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "queue",
		Short: "Show today's review queue without starting a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			items, _, closeStores, err := openStores(cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = closeStores()
			}()

			queue := review.NewQueueManager(items, cfg.Scheduler.SchedulerParams(), nil)
			session, err := queue.BuildSession(cmd.Context(), cfg.Scheduler.SessionConfig(), time.Now())
			if err != nil {
				return fmt.Errorf("failed to build the review queue: %w", err)
			}
			if len(session) == 0 {
				fmt.Println("Nothing to review. You are all caught up.")
				return nil
			}

			bold := color.New(color.Bold)
			for i, entry := range session {
				if _, err := bold.Printf("%2d. %s", i+1, entry.ItemID); err != nil {
					return fmt.Errorf("failed to write to stdout: %w", err)
				}
				if entry.New {
					fmt.Printf("  (new item)\n")
					continue
				}
				fmt.Printf("  mastery=%s retention=%.0f%%\n", entry.Mastery, entry.Retention*100)
			}
			fmt.Printf("\n%d items queued\n", len(session))
			return nil
		},
	}
}
