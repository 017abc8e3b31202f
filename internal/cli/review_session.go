// Package cli provides the interactive terminal frontends.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/fatih/color"

	"github.com/mfukuda/recall/internal/item"
	"github.com/mfukuda/recall/internal/review"
	"github.com/mfukuda/recall/internal/scheduler"
)

var errQuit = errors.New("quit")

const conflictRetryAttempts = 3

// ReviewSessionCLI runs an interactive review session: it walks the queued
// items, asks for a recall quality per item, and submits each grade.
type ReviewSessionCLI struct {
	processor  *review.Processor
	queue      *review.QueueManager
	sessionCfg review.SessionConfig

	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
	italic       *color.Color
	now          func() time.Time
}

// NewReviewSessionCLI creates a new ReviewSessionCLI.
func NewReviewSessionCLI(
	processor *review.Processor,
	queue *review.QueueManager,
	sessionCfg review.SessionConfig,
) *ReviewSessionCLI {
	return &ReviewSessionCLI{
		processor:    processor,
		queue:        queue,
		sessionCfg:   sessionCfg,
		stdinReader:  bufio.NewReader(os.Stdin),
		stdoutWriter: os.Stdout,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
		now:          time.Now,
	}
}

// Run walks today's queue until it is exhausted, the user quits, or an
// interrupt arrives.
func (cli *ReviewSessionCLI) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	session, err := cli.queue.BuildSession(ctx, cli.sessionCfg, cli.now())
	if err != nil {
		return fmt.Errorf("queue.BuildSession() > %w", err)
	}
	if len(session) == 0 {
		fmt.Fprintln(cli.stdoutWriter, "Nothing to review. You are all caught up.")
		return nil
	}

	fmt.Fprintf(cli.stdoutWriter, "Starting review session with %d items\n\n", len(session))

	reviewed := 0
	for i, entry := range session {
		select {
		case <-ctx.Done():
			fmt.Fprintln(cli.stdoutWriter, "Received interrupt signal, exiting...")
			return nil
		default:
		}

		if err := cli.reviewOne(ctx, i+1, len(session), entry); err != nil {
			if errors.Is(err, errQuit) {
				break
			}
			return err
		}
		reviewed++
	}

	fmt.Fprintf(cli.stdoutWriter, "\nSession finished: %d of %d items reviewed\n", reviewed, len(session))
	return nil
}

func (cli *ReviewSessionCLI) reviewOne(ctx context.Context, position, total int, entry review.SessionEntry) error {
	if _, err := cli.bold.Fprintf(cli.stdoutWriter, "[%d/%d] %s", position, total, entry.ItemID); err != nil {
		return fmt.Errorf("failed to write an item header > %w", err)
	}
	label := string(entry.Mastery)
	if entry.New {
		label = "new item"
	}
	if _, err := cli.italic.Fprintf(cli.stdoutWriter, " (%s, retention %.0f%%)\n", label, entry.Retention*100); err != nil {
		return fmt.Errorf("failed to write an item summary > %w", err)
	}

	for {
		fmt.Fprint(cli.stdoutWriter, "Recall quality (0-5, s to skip, q to quit): ")
		line, err := cli.stdinReader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return errQuit
			}
			return fmt.Errorf("failed to read an answer > %w", err)
		}

		input := strings.ToLower(strings.TrimSpace(line))
		switch input {
		case "q", "quit":
			return errQuit
		case "s", "skip":
			fmt.Fprintln(cli.stdoutWriter, "Skipped.")
			return nil
		}

		quality, err := strconv.Atoi(input)
		if err != nil || quality < 0 || quality > scheduler.MaxQuality {
			fmt.Fprintln(cli.stdoutWriter, "Please enter a number between 0 and 5.")
			continue
		}

		started := cli.now()
		result, err := cli.submitWithRetry(ctx, entry.ItemID, quality, started)
		if err != nil {
			return fmt.Errorf("failed to submit a review for %s > %w", entry.ItemID, err)
		}

		if quality >= scheduler.SuccessThreshold {
			green := color.New(color.FgGreen)
			if _, err := green.Fprintf(cli.stdoutWriter, "Recalled. Next review in %d days\n", result.Item.IntervalDays); err != nil {
				return fmt.Errorf("failed to write to stdout > %w", err)
			}
		} else {
			red := color.New(color.FgRed)
			if _, err := red.Fprintf(cli.stdoutWriter, "Forgotten. The item restarts at a %d day interval\n", result.Item.IntervalDays); err != nil {
				return fmt.Errorf("failed to write to stdout > %w", err)
			}
		}
		if result.MasteryChanged {
			fmt.Fprintf(cli.stdoutWriter, "Mastery: %s -> %s\n", result.PreviousMastery, result.NewMastery)
		}
		fmt.Fprintln(cli.stdoutWriter)
		return nil
	}
}

// submitWithRetry retries lost compare-and-swap races with a fresh
// submission time. Any other failure aborts immediately.
func (cli *ReviewSessionCLI) submitWithRetry(ctx context.Context, itemID string, quality int, startedAt time.Time) (*review.SubmitResult, error) {
	var result *review.SubmitResult
	if err := retry.Do(
		func() error {
			submittedAt := cli.now()
			elapsed := int(submittedAt.Sub(startedAt).Seconds())
			if elapsed < 0 {
				elapsed = 0
			}

			submitted, err := cli.processor.SubmitReview(ctx, review.SubmitRequest{
				ItemID:           itemID,
				Quality:          quality,
				TimeSpentSeconds: elapsed,
				SubmittedAt:      submittedAt,
			})
			if err != nil {
				if !errors.Is(err, item.ErrConflict) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			result = submitted
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(conflictRetryAttempts),
		retry.LastErrorOnly(true),
	); err != nil {
		return nil, err
	}
	return result, nil
}
