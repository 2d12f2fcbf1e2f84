package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cinder/internal/cli/formatter"
	"github.com/alexanderramin/cinder/internal/domain"
	"github.com/alexanderramin/cinder/internal/service"
	"github.com/spf13/cobra"
)

func newJournalCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Write and read journal entries",
	}
	cmd.AddCommand(newJournalAddCmd(app), newJournalListCmd(app), newJournalShowCmd(app))
	return cmd
}

func newJournalAddCmd(app *App) *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "add [TEXT...]",
		Short: "Write a journal entry",
		Long:  "Write a journal entry. Without TEXT an editor form opens on interactive terminals.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			userID, err := app.resolveUser(ctx)
			if err != nil {
				return err
			}
			createdAt, err := parseWhen(at, app.now())
			if err != nil {
				return err
			}

			content := strings.TrimSpace(strings.Join(args, " "))
			if content == "" {
				if !app.interactive() {
					return fmt.Errorf("journal text is required")
				}
				if err := journalForm(&content).Run(); err != nil {
					return err
				}
			}

			var j *domain.JournalEntry
			err = app.withSpinner(cmd, "Reading your entry...", func() error {
				j, err = app.Activity.AddJournalEntry(ctx, userID, service.JournalInput{Content: content, CreatedAt: createdAt})
				return err
			})
			if err != nil {
				return err
			}
			return app.render(cmd.OutOrStdout(), j, func() string {
				return fmt.Sprintf("Saved entry %s  sentiment %s",
					formatter.TruncID(j.ID), formatter.FormatSentiment(j.SentimentScore))
			})
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "Entry time (default now)")
	return cmd
}

func newJournalListCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent journal entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			userID, err := app.resolveUser(ctx)
			if err != nil {
				return err
			}
			entries, err := app.Activity.RecentJournalEntries(ctx, userID, limit)
			if err != nil {
				return err
			}
			if entries == nil {
				entries = []*domain.JournalEntry{}
			}
			return app.render(cmd.OutOrStdout(), entries, func() string {
				if len(entries) == 0 {
					return "No journal entries yet."
				}
				return formatter.FormatJournalEntries(entries, app.now())
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", service.DefaultRecentLimit, "Maximum number of entries")
	return cmd
}

func newJournalShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a journal entry with its emotion reading",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			userID, err := app.resolveUser(ctx)
			if err != nil {
				return err
			}
			j, err := app.Activity.GetJournalEntry(ctx, userID, args[0])
			if err != nil {
				return err
			}
			return app.render(cmd.OutOrStdout(), j, func() string {
				return formatter.FormatJournalEntry(j)
			})
		},
	}
}
