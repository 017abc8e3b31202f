package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mfukuda/recall/internal/analytics"
	"github.com/mfukuda/recall/internal/pdf"
)

func newStatsCommand() *cobra.Command {
	var windowDays int
	var pdfPath string
	var templatePath string
	command := &cobra.Command{
		Use:   "stats",
		Short: "Show review performance statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if windowDays <= 0 {
				return fmt.Errorf("days must be a positive integer, got %d", windowDays)
			}

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

			now := time.Now()
			windowed, err := events.Query(cmd.Context(), now.AddDate(0, 0, -windowDays), time.Time{})
			if err != nil {
				return fmt.Errorf("failed to query review events: %w", err)
			}
			all, err := items.ListAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list items: %w", err)
			}

			stats := analytics.ComputeStatistics(windowed, all, windowDays, now)
			report, err := analytics.RenderMarkdown(stats, now, templatePath)
			if err != nil {
				return fmt.Errorf("failed to render the report: %w", err)
			}

			if pdfPath != "" {
				if err := pdf.FromMarkdown([]byte(report), pdfPath); err != nil {
					return fmt.Errorf("failed to write a PDF report: %w", err)
				}
				fmt.Printf("Wrote the report to %s\n", pdfPath)
				return nil
			}

			fmt.Print(report)
			return nil
		},
	}
	command.Flags().IntVar(&windowDays, "days", 30, "statistics window in days")
	command.Flags().StringVar(&pdfPath, "pdf", "", "write the report as a PDF to this path instead of printing it")
	command.Flags().StringVar(&templatePath, "template", "", "custom report template path")

	return command
}
