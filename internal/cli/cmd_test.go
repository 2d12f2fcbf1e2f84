package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/cinder/internal/annotate"
	"github.com/alexanderramin/cinder/internal/domain"
	"github.com/alexanderramin/cinder/internal/service"
	"github.com/alexanderramin/cinder/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	repos := service.NewRepos(database)
	clock := service.WithClock(func() time.Time { return testutil.RefTime })
	keyword := annotate.NewKeyword()

	return &App{
		Users:      service.NewUserService(repos.Users, clock),
		Activity:   service.NewActivityService(repos, keyword, clock),
		Burnout:    service.NewBurnoutService(repos, clock),
		Patterns:   service.NewPatternService(repos, clock),
		Import:     service.NewImportService(repos.Users, testutil.NewTestUoW(database), keyword, clock),
		WindowDays: 7,
		Now:        func() time.Time { return testutil.RefTime },
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func seedUser(t *testing.T, app *App) *domain.User {
	t.Helper()
	u, err := app.Users.Create(context.Background(), "cli@example.com", "CLI User")
	require.NoError(t, err)
	return u
}

func TestRootCmd_NoArgs_ShowsHelp(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.Contains(t, output, "cinder")
	assert.Contains(t, output, "score")
}

func TestUserAdd_AndList(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "user", "add", "--email", "New@Example.com", "--name", "New User")
	require.NoError(t, err)
	assert.Contains(t, out, "new@example.com")
	assert.Contains(t, out, "CINDER_USER=")

	out, err = executeCmd(t, app, "user", "list", "--json")
	require.NoError(t, err)
	var users []domain.User
	require.NoError(t, json.Unmarshal([]byte(out), &users))
	require.Len(t, users, 1)
	assert.Equal(t, "New User", users[0].FullName)
}

func TestUserAdd_RequiresEmailWhenNotInteractive(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "user", "add")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--email")
}

func TestCommands_RequireUser(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "score")
	require.ErrorIs(t, err, errNoUser)

	_, err = executeCmd(t, app, "score", "--user", "ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
}

func TestUserFlag_AcceptsEmailAndDefault(t *testing.T) {
	app := testApp(t)
	u := seedUser(t, app)

	out, err := executeCmd(t, app, "history", "--user", "cli@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "No scores yet")

	app.DefaultUser = u.ID
	out, err = executeCmd(t, app, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No scores yet")
}

func TestSessionLog_AndList(t *testing.T) {
	app := testApp(t)
	u := seedUser(t, app)

	out, err := executeCmd(t, app, "session", "log", "--user", u.ID,
		"--start", "2024-03-04T08:00:00Z", "--end", "2024-03-04T11:30:00Z", "--type", "coding", "--productivity", "0.8")
	require.NoError(t, err)
	assert.Contains(t, out, "3h 30m")

	out, err = executeCmd(t, app, "session", "log", "--user", u.ID, "--minutes", "45", "--json")
	require.NoError(t, err)
	var ws domain.WorkSession
	require.NoError(t, json.Unmarshal([]byte(out), &ws))
	assert.Equal(t, 45, ws.DurationMinutes)
	assert.True(t, ws.EndTime.Equal(testutil.RefTime))

	_, err = executeCmd(t, app, "session", "log", "--user", u.ID, "--start", "10:00")
	require.Error(t, err)

	_, err = executeCmd(t, app, "session", "log", "--user", u.ID, "--start", "2024-03-04T11:00:00Z", "--end", "2024-03-04T10:00:00Z")
	require.Error(t, err)

	out, err = executeCmd(t, app, "session", "list", "--user", u.ID, "--json")
	require.NoError(t, err)
	var sessions []domain.WorkSession
	require.NoError(t, json.Unmarshal([]byte(out), &sessions))
	assert.Len(t, sessions, 2)
}

func TestMeetingAdd_DefaultsAndOverrides(t *testing.T) {
	app := testApp(t)
	u := seedUser(t, app)

	out, err := executeCmd(t, app, "meeting", "add", "--user", u.ID, "--title", "Standup", "--start", "2024-03-04T09:00:00Z", "--json")
	require.NoError(t, err)
	var m domain.Meeting
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	assert.Equal(t, 30, m.DurationMinutes)
	assert.Equal(t, 1, m.AttendeesCount)
	assert.False(t, m.IsAfterHours)

	out, err = executeCmd(t, app, "meeting", "add", "--user", u.ID, "--title", "Late sync",
		"--start", "2024-03-04T09:00:00Z", "--minutes", "60", "--attendees", "6", "--after-hours", "--json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	assert.Equal(t, 6, m.AttendeesCount)
	assert.True(t, m.IsAfterHours)

	_, err = executeCmd(t, app, "meeting", "add", "--user", u.ID)
	require.Error(t, err)

	out, err = executeCmd(t, app, "meeting", "list", "--user", u.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Late sync")
}

func TestEmailAdd_ScoresTone(t *testing.T) {
	app := testApp(t)
	u := seedUser(t, app)

	out, err := executeCmd(t, app, "email", "add", "--user", u.ID, "--subject", "URGENT", "--body", "Need this asap, deadline is today", "--received", "--json")
	require.NoError(t, err)
	var e domain.Email
	require.NoError(t, json.Unmarshal([]byte(out), &e))
	assert.False(t, e.IsSent)
	require.NotNil(t, e.SentimentScore)
	assert.Greater(t, e.StressLevel, 0.0)

	_, err = executeCmd(t, app, "email", "add", "--user", u.ID)
	require.Error(t, err)

	out, err = executeCmd(t, app, "email", "list", "--user", u.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "URGENT")
}

func TestJournal_AddListShow(t *testing.T) {
	app := testApp(t)
	u := seedUser(t, app)

	out, err := executeCmd(t, app, "journal", "add", "--user", u.ID, "--json", "Exhausted", "and", "overwhelmed", "today")
	require.NoError(t, err)
	var j domain.JournalEntry
	require.NoError(t, json.Unmarshal([]byte(out), &j))
	assert.Equal(t, "Exhausted and overwhelmed today", j.Content)
	require.NotNil(t, j.SentimentScore)
	assert.Less(t, *j.SentimentScore, 0.0)

	_, err = executeCmd(t, app, "journal", "add", "--user", u.ID)
	require.Error(t, err)

	out, err = executeCmd(t, app, "journal", "show", "--user", u.ID, j.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Exhausted and overwhelmed today")

	out, err = executeCmd(t, app, "journal", "list", "--user", u.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "JOURNAL")
}

func TestScoreTrendHistory(t *testing.T) {
	app := testApp(t)
	u := seedUser(t, app)

	out, err := executeCmd(t, app, "score", "--user", u.ID, "--json")
	require.NoError(t, err)
	var s domain.BurnoutScore
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, domain.BurnoutLow, s.BurnoutLevel)
	assert.InDelta(t, 0.0, s.OverallScore, 1e-9)

	out, err = executeCmd(t, app, "score", "--user", u.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "BURNOUT SCORE")
	assert.Contains(t, out, "Last 7 days")

	out, err = executeCmd(t, app, "history", "--user", u.ID, "--json")
	require.NoError(t, err)
	var history []domain.BurnoutScore
	require.NoError(t, json.Unmarshal([]byte(out), &history))
	assert.Len(t, history, 2)

	out, err = executeCmd(t, app, "trend", "--user", u.ID, "--json")
	require.NoError(t, err)
	var trend trendOutput
	require.NoError(t, json.Unmarshal([]byte(out), &trend))
	assert.Equal(t, 30, trend.Days)
	assert.Len(t, trend.Values, 2)

	_, err = executeCmd(t, app, "score", "--user", u.ID, "--days", "0")
	require.Error(t, err)
}

func TestPatterns(t *testing.T) {
	app := testApp(t)
	u := seedUser(t, app)

	_, err := executeCmd(t, app, "session", "log", "--user", u.ID, "--start", "2024-03-03T09:00:00Z", "--end", "2024-03-03T11:00:00Z")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "patterns", "--user", u.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "1 sessions, 2.0h total")
	assert.Contains(t, out, "09:00")
}

func TestImport(t *testing.T) {
	app := testApp(t)
	u := seedUser(t, app)

	path := filepath.Join(t.TempDir(), "activity.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"work_sessions": [{"start_time": "2024-03-01T09:00:00Z", "end_time": "2024-03-01T17:00:00Z"}],
		"meetings": [{"title": "Planning", "start_time": "2024-03-01T10:00:00Z", "end_time": "2024-03-01T11:00:00Z"}]
	}`), 0o644))

	out, err := executeCmd(t, app, "import", "--user", u.ID, path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported")
	assert.Contains(t, out, "meetings         1")

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"meetings": [{"start_time": "nope"}]}`), 0o644))
	_, err = executeCmd(t, app, "import", "--user", u.ID, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import validation failed")
}

func TestServe_UsesConfiguredRunner(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "serve")
	require.Error(t, err)

	var gotAddr string
	app.Serve = func(_ context.Context, addr string) error {
		gotAddr = addr
		return nil
	}
	_, err = executeCmd(t, app, "serve", "--addr", ":9999")
	require.NoError(t, err)
	assert.Equal(t, ":9999", gotAddr)
}
