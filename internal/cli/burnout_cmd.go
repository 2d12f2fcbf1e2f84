package cli

import (
	"github.com/alexanderramin/cinder/internal/cli/formatter"
	"github.com/alexanderramin/cinder/internal/domain"
	"github.com/alexanderramin/cinder/internal/scoring"
	"github.com/spf13/cobra"
)

func newScoreCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Calculate a burnout score from recent activity",
		Long: `Calculate a burnout score from the last --days of activity. The result
is appended to the score history and pushed to any live client.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			userID, err := app.resolveUser(ctx)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("days") {
				days = app.windowDays()
			}
			score, err := app.Burnout.Calculate(ctx, userID, days)
			if err != nil {
				return err
			}
			return app.render(cmd.OutOrStdout(), score, func() string {
				return formatter.FormatBurnoutScore(score, days)
			})
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "Trailing window in days")
	return cmd
}

type trendOutput struct {
	Days     int              `json:"days"`
	Values   []float64        `json:"values"`
	Movement scoring.Movement `json:"movement"`
}

func newTrendCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Show how the overall score moved over recent days",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			userID, err := app.resolveUser(ctx)
			if err != nil {
				return err
			}
			trend, err := app.Burnout.Trend(ctx, userID, days)
			if err != nil {
				return err
			}
			values := trend.Values()
			if values == nil {
				values = []float64{}
			}
			out := trendOutput{Days: days, Values: values, Movement: trend.Movement()}
			return app.render(cmd.OutOrStdout(), out, func() string {
				return formatter.FormatTrend(days, trend)
			})
		},
	}

	cmd.Flags().IntVar(&days, "days", 30, "Number of days to include")
	return cmd
}

func newHistoryCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent burnout scores, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			userID, err := app.resolveUser(ctx)
			if err != nil {
				return err
			}
			scores, err := app.Burnout.History(ctx, userID, limit)
			if err != nil {
				return err
			}
			if scores == nil {
				scores = []*domain.BurnoutScore{}
			}
			return app.render(cmd.OutOrStdout(), scores, func() string {
				if len(scores) == 0 {
					return "No scores yet. Run: cinder score"
				}
				return formatter.FormatHistory(scores, app.now())
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of scores")
	return cmd
}

func newPatternsCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "Show when you work, by hour of day",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			userID, err := app.resolveUser(ctx)
			if err != nil {
				return err
			}
			p, err := app.Patterns.WorkPatterns(ctx, userID, days)
			if err != nil {
				return err
			}
			return app.render(cmd.OutOrStdout(), p, func() string {
				return formatter.FormatPatterns(p)
			})
		},
	}

	cmd.Flags().IntVar(&days, "days", 30, "Number of days to include")
	return cmd
}

