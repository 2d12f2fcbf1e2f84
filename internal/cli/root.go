package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alexanderramin/cinder/internal/cli/formatter"
	"github.com/alexanderramin/cinder/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and process wiring used by CLI commands.
type App struct {
	Users    service.UserService
	Activity service.ActivityService
	Burnout  service.BurnoutService
	Patterns service.PatternService
	Import   service.ImportService

	// DefaultUser is used when --user is not given.
	DefaultUser string
	// WindowDays is the default scoring window.
	WindowDays int
	// Serve runs the HTTP server until ctx is cancelled.
	Serve func(ctx context.Context, addr string) error
	// IsInteractive reports whether prompts and spinners may be shown.
	IsInteractive func() bool
	Now           func() time.Time

	user    string
	jsonOut bool
}

var errNoUser = errors.New("no user selected: pass --user or set CINDER_USER")

// NewRootCmd creates the top-level "cinder" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "cinder",
		Short:         "Burnout scoring from work sessions, meetings, emails and journal entries",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&app.user, "user", app.DefaultUser, "User id or email (default $CINDER_USER)")
	root.PersistentFlags().BoolVar(&app.jsonOut, "json", false, "Print JSON instead of formatted output")

	root.AddCommand(
		newServeCmd(app),
		newUserCmd(app),
		newSessionCmd(app),
		newMeetingCmd(app),
		newEmailCmd(app),
		newJournalCmd(app),
		newScoreCmd(app),
		newTrendCmd(app),
		newHistoryCmd(app),
		newPatternsCmd(app),
		newImportCmd(app),
		newWatchCmd(app),
	)

	return root
}

func (app *App) now() time.Time {
	if app.Now != nil {
		return app.Now()
	}
	return time.Now()
}

func (app *App) interactive() bool {
	return !app.jsonOut && app.IsInteractive != nil && app.IsInteractive()
}

func (app *App) windowDays() int {
	if app.WindowDays > 0 {
		return app.WindowDays
	}
	return 7
}

// resolveUser turns the --user value into a user id. Emails are looked up.
func (app *App) resolveUser(ctx context.Context) (string, error) {
	ref := strings.TrimSpace(app.user)
	if ref == "" {
		return "", errNoUser
	}
	if strings.Contains(ref, "@") {
		u, err := app.Users.GetByEmail(ctx, ref)
		if err != nil {
			return "", fmt.Errorf("user %s: %w", ref, err)
		}
		return u.ID, nil
	}
	if _, err := app.Users.GetByID(ctx, ref); err != nil {
		return "", fmt.Errorf("user %s: %w", ref, err)
	}
	return ref, nil
}

// render prints v as JSON under --json and text() otherwise.
func (app *App) render(w io.Writer, v any, text func() string) error {
	if app.jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := fmt.Fprintln(w, text())
	return err
}

// withSpinner runs fn behind a spinner on interactive terminals.
func (app *App) withSpinner(cmd *cobra.Command, message string, fn func() error) error {
	if !app.interactive() {
		return fn()
	}
	stop := formatter.StartSpinner(cmd.ErrOrStderr(), message)
	defer stop()
	return fn()
}
