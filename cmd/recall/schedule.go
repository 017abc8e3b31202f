package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mfukuda/recall/internal/analytics"
)

func newScheduleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Recommend review times based on past performance",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			_, events, closeStores, err := openStores(cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = closeStores()
			}()

			history, err := events.Query(cmd.Context(), time.Time{}, time.Time{})
			if err != nil {
				return fmt.Errorf("failed to query review events: %w", err)
			}

			rec := analytics.RecommendSchedule(history)
			if len(rec.BestReviewTimes) == 0 && len(rec.SuggestedSchedule) == 0 {
				fmt.Println("Not enough review history yet. Keep reviewing for a few days.")
				return nil
			}

			bold := color.New(color.Bold)
			if len(rec.BestReviewTimes) > 0 {
				if _, err := bold.Println("Best review times"); err != nil {
					return fmt.Errorf("failed to write to stdout: %w", err)
				}
				for _, stat := range rec.BestReviewTimes {
					fmt.Printf("  %02d:00  mean quality %.1f over %d reviews\n", stat.Hour, stat.MeanQuality, stat.Samples)
				}
			}
			if len(rec.AvoidTimes) > 0 {
				if _, err := bold.Println("Times to avoid"); err != nil {
					return fmt.Errorf("failed to write to stdout: %w", err)
				}
				for _, stat := range rec.AvoidTimes {
					fmt.Printf("  %02d:00  mean quality %.1f over %d reviews\n", stat.Hour, stat.MeanQuality, stat.Samples)
				}
			}
			if rec.OptimalSessionLengthMinutes > 0 {
				fmt.Printf("Optimal session length: about %d minutes\n", rec.OptimalSessionLengthMinutes)
			}
			fmt.Printf("Consistency score: %.0f/100\n", rec.ConsistencyScore)

			if len(rec.SuggestedSchedule) > 0 {
				if _, err := bold.Println("Suggested weekly schedule"); err != nil {
					return fmt.Errorf("failed to write to stdout: %w", err)
				}
				for _, day := range rec.SuggestedSchedule {
					note := ""
					if day.Fallback {
						note = " (no history for this day yet)"
					}
					fmt.Printf("  %-9s %02d:00 for %d minutes%s\n", day.Weekday, day.Hour, day.DurationMinutes, note)
				}
			}
			return nil
		},
	}
}
