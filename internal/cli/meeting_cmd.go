package cli

import (
	"fmt"

	"github.com/alexanderramin/cinder/internal/cli/formatter"
	"github.com/alexanderramin/cinder/internal/domain"
	"github.com/alexanderramin/cinder/internal/service"
	"github.com/spf13/cobra"
)

func newMeetingCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meeting",
		Short: "Record and list meetings",
	}
	cmd.AddCommand(newMeetingAddCmd(app), newMeetingListCmd(app))
	return cmd
}

func newMeetingAddCmd(app *App) *cobra.Command {
	var title, start, end string
	var minutes, attendees int
	var afterHours bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a meeting",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			userID, err := app.resolveUser(ctx)
			if err != nil {
				return err
			}
			if end == "" && minutes <= 0 {
				minutes = 30
			}
			s, e, err := interval(start, end, minutes, app.now())
			if err != nil {
				return err
			}

			in := service.MeetingInput{Title: title, StartTime: s, EndTime: e}
			if cmd.Flags().Changed("attendees") {
				in.AttendeesCount = &attendees
			}
			if cmd.Flags().Changed("after-hours") {
				in.IsAfterHours = &afterHours
			}

			m, err := app.Activity.AddMeeting(ctx, userID, in)
			if err != nil {
				return err
			}
			return app.render(cmd.OutOrStdout(), m, func() string {
				msg := fmt.Sprintf("Recorded %q, %s (%s)", m.Title, formatter.FormatMinutes(m.DurationMinutes), formatter.TruncID(m.ID))
				if m.IsAfterHours {
					msg += " " + formatter.StyleYellow.Render("after hours")
				}
				return msg
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Meeting title")
	cmd.Flags().StringVar(&start, "start", "", "Start time")
	cmd.Flags().StringVar(&end, "end", "", "End time")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "Duration in minutes (default 30)")
	cmd.Flags().IntVar(&attendees, "attendees", 1, "Number of attendees")
	cmd.Flags().BoolVar(&afterHours, "after-hours", false, "Override the after-hours flag derived from working hours")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newMeetingListCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent meetings",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			userID, err := app.resolveUser(ctx)
			if err != nil {
				return err
			}
			meetings, err := app.Activity.RecentMeetings(ctx, userID, limit)
			if err != nil {
				return err
			}
			if meetings == nil {
				meetings = []*domain.Meeting{}
			}
			return app.render(cmd.OutOrStdout(), meetings, func() string {
				if len(meetings) == 0 {
					return "No meetings recorded."
				}
				return formatter.FormatMeetings(meetings)
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", service.DefaultRecentLimit, "Maximum number of meetings")
	return cmd
}
