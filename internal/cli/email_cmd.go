package cli

import (
	"fmt"

	"github.com/alexanderramin/cinder/internal/cli/formatter"
	"github.com/alexanderramin/cinder/internal/domain"
	"github.com/alexanderramin/cinder/internal/service"
	"github.com/spf13/cobra"
)

func newEmailCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "email",
		Short: "Record and list emails",
	}
	cmd.AddCommand(newEmailAddCmd(app), newEmailListCmd(app))
	return cmd
}

func newEmailAddCmd(app *App) *cobra.Command {
	var subject, body, sentAt string
	var received, afterHours bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an email and score its tone",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			userID, err := app.resolveUser(ctx)
			if err != nil {
				return err
			}
			at, err := parseWhen(sentAt, app.now())
			if err != nil {
				return err
			}

			sent := !received
			in := service.EmailInput{Subject: subject, Body: body, SentAt: at, IsSent: &sent}
			if cmd.Flags().Changed("after-hours") {
				in.IsAfterHours = &afterHours
			}

			var e *domain.Email
			err = app.withSpinner(cmd, "Reading tone...", func() error {
				e, err = app.Activity.AddEmail(ctx, userID, in)
				return err
			})
			if err != nil {
				return err
			}
			return app.render(cmd.OutOrStdout(), e, func() string {
				return fmt.Sprintf("Recorded email %s  sentiment %s  stress %s",
					formatter.TruncID(e.ID),
					formatter.FormatSentiment(e.SentimentScore),
					formatter.ScoreColor(e.StressLevel).Render(formatter.FormatScore(e.StressLevel)))
			})
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Subject line")
	cmd.Flags().StringVar(&body, "body", "", "Message body")
	cmd.Flags().StringVar(&sentAt, "sent-at", "", "Send time (default now)")
	cmd.Flags().BoolVar(&received, "received", false, "The email was received rather than sent")
	cmd.Flags().BoolVar(&afterHours, "after-hours", false, "Override the after-hours flag derived from working hours")

	return cmd
}

func newEmailListCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent emails",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			userID, err := app.resolveUser(ctx)
			if err != nil {
				return err
			}
			emails, err := app.Activity.RecentEmails(ctx, userID, limit)
			if err != nil {
				return err
			}
			if emails == nil {
				emails = []*domain.Email{}
			}
			return app.render(cmd.OutOrStdout(), emails, func() string {
				if len(emails) == 0 {
					return "No emails recorded."
				}
				return formatter.FormatEmails(emails, app.now())
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", service.DefaultRecentLimit, "Maximum number of emails")
	return cmd
}
