package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mfukuda/recall/internal/item"
)

func newItemCommand() *cobra.Command {
	itemCommand := &cobra.Command{
		Use:   "item",
		Short: "Manage the items tracked for review",
	}

	itemCommand.AddCommand(newItemAddCommand())
	itemCommand.AddCommand(newItemListCommand())

	return itemCommand
}

func newItemAddCommand() *cobra.Command {
	var itemType string
	command := &cobra.Command{
		Use:   "add [id]",
		Short: "Register a new item for scheduling",
		Args:  cobra.ExactArgs(1),
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

			it := item.New(args[0], itemType, time.Now())
			if err := items.Create(cmd.Context(), &it); err != nil {
				return fmt.Errorf("failed to add an item: %w", err)
			}

			fmt.Printf("Added %s. It will appear in the next review session.\n", it.ID)
			return nil
		},
	}
	command.Flags().StringVar(&itemType, "type", "", "item type label, e.g. vocabulary or chord")

	return command
}

func newItemListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every tracked item with its scheduling state",
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

			all, err := items.ListAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list items: %w", err)
			}
			if len(all) == 0 {
				fmt.Println("No items yet. Add one with: recall item add <id>")
				return nil
			}

			bold := color.New(color.Bold)
			for _, it := range all {
				if _, err := bold.Printf("%s", it.ID); err != nil {
					return fmt.Errorf("failed to write to stdout: %w", err)
				}
				next := "unscheduled"
				if it.NextReviewAt != nil {
					next = it.NextReviewAt.Format("2006-01-02")
				}
				fmt.Printf("  mastery=%s ease=%.2f interval=%dd next=%s\n",
					it.MasteryLevel(), it.EaseFactor, it.IntervalDays, next)
			}
			fmt.Printf("\n%d items\n", len(all))
			return nil
		},
	}
}
