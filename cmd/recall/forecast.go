package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mfukuda/recall/internal/analytics"
)

func newForecastCommand() *cobra.Command {
	var horizonDays int
	command := &cobra.Command{
		Use:   "forecast",
		Short: "Forecast how many reviews come due per day",
		RunE: func(cmd *cobra.Command, args []string) error {
			if horizonDays <= 0 {
				return fmt.Errorf("days must be a positive integer, got %d", horizonDays)
			}

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

			all, err := items.ListAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list items: %w", err)
			}

			forecast := analytics.Forecast(all, horizonDays, time.Now())
			for _, day := range forecast {
				fmt.Printf("%s  %3d  %s\n", day.Date, day.Count, strings.Repeat("#", day.Count))
			}
			return nil
		},
	}
	command.Flags().IntVar(&horizonDays, "days", 7, "forecast horizon in days")

	return command
}
