package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alexanderramin/cinder/internal/cli/formatter"
	"github.com/alexanderramin/cinder/internal/domain"
	"github.com/alexanderramin/cinder/internal/notify"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// watchHistory is how many received scores feed the sparkline.
const watchHistory = 30

// scoreUpdateMsg carries a score pushed by the server.
type scoreUpdateMsg struct {
	score domain.BurnoutScore
}

// disconnectedMsg ends the live feed.
type disconnectedMsg struct {
	err error
}

// decodeUpdate turns a channel frame into a message for the model. Frames
// other than score updates yield nil.
func decodeUpdate(data []byte) tea.Msg {
	var env struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &env); err != nil || env.Type != notify.TypeBurnoutUpdate {
		return nil
	}
	var score domain.BurnoutScore
	if err := json.Unmarshal(env.Data, &score); err != nil {
		return nil
	}
	return scoreUpdateMsg{score: score}
}

// waitForEvent reads the next event from the feed. A closed feed yields nil.
func waitForEvent(events <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return nil
		}
		return msg
	}
}

type watchModel struct {
	spinner spinner.Model
	events  <-chan tea.Msg
	target  string
	days    int

	latest   *domain.BurnoutScore
	values   []float64
	received int
	err      error
	closed   bool
	quitting bool
}

// newWatchModel shows last as the current score until the first update
// arrives.
func newWatchModel(events <-chan tea.Msg, target string, days int, last *domain.BurnoutScore) watchModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StylePurple

	m := watchModel{spinner: sp, events: events, target: target, days: days, latest: last}
	if last != nil {
		m.values = []float64{last.OverallScore}
	}
	return m
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForEvent(m.events))
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case scoreUpdateMsg:
		s := msg.score
		m.latest = &s
		m.received++
		m.values = append(m.values, s.OverallScore)
		if len(m.values) > watchHistory {
			m.values = m.values[len(m.values)-watchHistory:]
		}
		return m, waitForEvent(m.events)

	case disconnectedMsg:
		m.closed = true
		m.err = msg.err
		return m, nil

	case spinner.TickMsg:
		if m.closed {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m watchModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(formatter.Header("cinder watch") + "\n")
	b.WriteString(formatter.Dim(m.target) + "\n\n")

	if m.latest != nil {
		b.WriteString(formatter.FormatBurnoutScore(m.latest, m.days) + "\n\n")
	}
	if len(m.values) > 1 {
		fmt.Fprintf(&b, "%s %s\n\n", formatter.StyleHeader.Render(formatter.Sparkline(m.values)), formatter.Dim(fmt.Sprintf("%d updates", m.received)))
	}

	switch {
	case m.closed && m.err != nil:
		b.WriteString(formatter.StyleRed.Render("Disconnected: "+m.err.Error()) + "\n")
	case m.closed:
		b.WriteString(formatter.StyleYellow.Render("Disconnected.") + "\n")
	default:
		fmt.Fprintf(&b, "%s %s\n", m.spinner.View(), formatter.Dim("waiting for new scores"))
	}
	b.WriteString(formatter.Dim("q to quit"))
	return b.String()
}
