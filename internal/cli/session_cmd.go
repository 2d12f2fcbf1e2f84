package cli

import (
	"fmt"

	"github.com/alexanderramin/cinder/internal/cli/formatter"
	"github.com/alexanderramin/cinder/internal/domain"
	"github.com/alexanderramin/cinder/internal/service"
	"github.com/spf13/cobra"
)

func newSessionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Log and list work sessions",
	}
	cmd.AddCommand(newSessionLogCmd(app), newSessionListCmd(app))
	return cmd
}

func newSessionLogCmd(app *App) *cobra.Command {
	var start, end, activityType string
	var minutes int
	var productivity float64

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log a work session",
		Example: `  cinder session log --minutes 90 --type coding
  cinder session log --start 09:00 --end 17:30`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			userID, err := app.resolveUser(ctx)
			if err != nil {
				return err
			}
			s, e, err := interval(start, end, minutes, app.now())
			if err != nil {
				return err
			}

			in := service.WorkSessionInput{StartTime: s, EndTime: e, ActivityType: activityType}
			if cmd.Flags().Changed("productivity") {
				in.ProductivityScore = &productivity
			}

			ws, err := app.Activity.LogWorkSession(ctx, userID, in)
			if err != nil {
				return err
			}
			return app.render(cmd.OutOrStdout(), ws, func() string {
				return fmt.Sprintf("Logged %s session %s (%s)",
					formatter.FormatMinutes(ws.DurationMinutes),
					formatter.ClockRange(ws.StartTime.Local(), ws.EndTime),
					formatter.TruncID(ws.ID))
			})
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start time")
	cmd.Flags().StringVar(&end, "end", "", "End time")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "Duration in minutes (ends now unless --start is set)")
	cmd.Flags().StringVar(&activityType, "type", "", "Activity type, e.g. coding or review")
	cmd.Flags().Float64Var(&productivity, "productivity", 0, "Self-rated productivity between 0 and 1")

	return cmd
}

func newSessionListCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List work sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			userID, err := app.resolveUser(ctx)
			if err != nil {
				return err
			}
			sessions, err := app.Activity.ListWorkSessions(ctx, userID, days)
			if err != nil {
				return err
			}
			if sessions == nil {
				sessions = []*domain.WorkSession{}
			}
			return app.render(cmd.OutOrStdout(), sessions, func() string {
				if len(sessions) == 0 {
					return fmt.Sprintf("No work sessions in the last %d days.", days)
				}
				return formatter.FormatSessions(sessions)
			})
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "Number of recent days to show")
	return cmd
}
