package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/cinder/internal/domain"
	"github.com/alexanderramin/cinder/internal/notify"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer is a bytes.Buffer safe for one writer and one reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func updateFrame(t *testing.T, overall float64, level domain.BurnoutLevel) []byte {
	t.Helper()
	data, err := json.Marshal(notify.BurnoutUpdate(domain.BurnoutScore{
		ID:           "s1",
		OverallScore: overall,
		BurnoutLevel: level,
		CalculatedAt: time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, err)
	return data
}

func TestDecodeUpdate(t *testing.T) {
	msg := decodeUpdate(updateFrame(t, 0.42, domain.BurnoutModerate))
	require.IsType(t, scoreUpdateMsg{}, msg)
	assert.InDelta(t, 0.42, msg.(scoreUpdateMsg).score.OverallScore, 1e-9)

	assert.Nil(t, decodeUpdate([]byte(`{"type":"ping","n":1}`)))
	assert.Nil(t, decodeUpdate([]byte(`not json`)))
}

// pump runs cmd and every command it leads to, feeding the messages back
// into m. Spinner ticks are dropped so the loop ends once the event
// channel is drained. It reports whether the model asked to quit.
func pump(t *testing.T, m tea.Model, cmd tea.Cmd) (tea.Model, bool) {
	t.Helper()
	quit := false
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 100, "command chain did not settle")
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case nil, spinner.TickMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case tea.QuitMsg:
			quit = true
			m, _ = m.Update(msg)
		default:
			var follow tea.Cmd
			m, follow = m.Update(msg)
			queue = append(queue, follow)
		}
	}
	return m, quit
}

func send(t *testing.T, m tea.Model, msg tea.Msg) (tea.Model, bool) {
	t.Helper()
	return pump(t, m, func() tea.Msg { return msg })
}

func startWatch(t *testing.T, events chan tea.Msg, last *domain.BurnoutScore) tea.Model {
	t.Helper()
	model := newWatchModel(events, "ws://localhost:8080/ws/u1", 7, last)
	m, _ := send(t, model, tea.WindowSizeMsg{Width: 100, Height: 40})
	m, quit := pump(t, m, m.Init())
	require.False(t, quit)
	return m
}

func TestWatchModel_ShowsUpdates(t *testing.T) {
	events := make(chan tea.Msg, 4)
	events <- decodeUpdate(updateFrame(t, 0.2, domain.BurnoutLow))
	events <- decodeUpdate(updateFrame(t, 0.7, domain.BurnoutHigh))
	close(events)

	m := startWatch(t, events, nil)

	view := m.View()
	assert.Contains(t, view, "● HIGH")
	assert.Contains(t, view, "2 updates")
	assert.Contains(t, view, "waiting for new scores")

	m, quit := send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	assert.True(t, quit)
	assert.Empty(t, m.View())
}

func TestWatchModel_StartsFromLastScore(t *testing.T) {
	events := make(chan tea.Msg)
	close(events)
	last := &domain.BurnoutScore{OverallScore: 0.5, BurnoutLevel: domain.BurnoutModerate, CalculatedAt: time.Now()}

	m := startWatch(t, events, last)
	assert.Contains(t, m.View(), "● MODERATE")
	assert.NotContains(t, m.View(), "updates")
}

func TestWatchModel_Disconnect(t *testing.T) {
	events := make(chan tea.Msg, 1)
	events <- disconnectedMsg{err: errors.New("connection reset")}
	close(events)

	m := startWatch(t, events, nil)
	assert.Contains(t, m.View(), "Disconnected: connection reset")
	assert.NotContains(t, m.View(), "waiting")

	_, quit := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, quit)
}

func TestStreamUpdates_PrintsScoreFrames(t *testing.T) {
	registry := notify.NewRegistry(nil)
	ws := notify.NewWSHandler(registry, nil)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws.Serve(w, r, strings.TrimPrefix(r.URL.Path, "/ws/"))
	}))
	t.Cleanup(srv.Close)

	target, err := channelURL(srv.URL, "u1")
	require.NoError(t, err)
	conn, _, err := websocket.DefaultDialer.Dial(target, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.Eventually(t, func() bool { return registry.Connected("u1") }, 2*time.Second, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	out := &syncBuffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(out)

	done := make(chan error, 1)
	go func() { done <- streamUpdates(ctx, conn, cmd) }()

	require.True(t, registry.Publish(ctx, "u1", notify.BurnoutUpdate(domain.BurnoutScore{ID: "s9", OverallScore: 0.66, BurnoutLevel: domain.BurnoutHigh})))
	require.True(t, registry.Publish(ctx, "u1", notify.Message{Type: "other", Data: 1}))
	require.True(t, registry.Publish(ctx, "u1", notify.BurnoutUpdate(domain.BurnoutScore{ID: "s10", OverallScore: 0.1, BurnoutLevel: domain.BurnoutLow})))

	require.Eventually(t, func() bool { return strings.Count(out.String(), "\n") >= 2 }, 2*time.Second, 10*time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"s9"`)
	assert.Contains(t, lines[1], `"s10"`)
}
