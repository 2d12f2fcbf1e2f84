package cli

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/alexanderramin/cinder/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

func newWatchCmd(app *App) *cobra.Command {
	var server string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow live score updates from a running server",
		Long: `Connect to the WebSocket channel of a running "cinder serve" and show
each score as it is calculated. Without a terminal the raw updates are
printed one per line.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			userID, err := app.resolveUser(ctx)
			if err != nil {
				return err
			}
			target, err := channelURL(server, userID)
			if err != nil {
				return err
			}

			conn, _, err := websocket.DefaultDialer.DialContext(ctx, target, nil)
			if err != nil {
				return fmt.Errorf("connecting to %s: %w", target, err)
			}
			defer conn.Close()

			if !app.interactive() {
				return streamUpdates(ctx, conn, cmd)
			}

			var last *domain.BurnoutScore
			if recent, err := app.Burnout.History(ctx, userID, 1); err == nil && len(recent) > 0 {
				last = recent[0]
			}

			events := make(chan tea.Msg, 16)
			go listen(conn, events)

			p := tea.NewProgram(newWatchModel(events, target, app.windowDays(), last),
				tea.WithContext(ctx), tea.WithOutput(cmd.OutOrStdout()))
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringVar(&server, "server", "http://localhost:8080", "Base URL of the cinder server")
	return cmd
}

// channelURL builds the WebSocket URL for userID from an http(s) or ws(s)
// base URL.
func channelURL(base, userID string) (string, error) {
	u, err := url.Parse(base)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("invalid server URL %q", base)
	}
	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported server scheme %q", u.Scheme)
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/ws/" + userID
	return u.String(), nil
}

// listen forwards score updates from conn until it fails.
func listen(conn *websocket.Conn, events chan<- tea.Msg) {
	defer close(events)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				err = nil
			}
			events <- disconnectedMsg{err: err}
			return
		}
		if msg := decodeUpdate(data); msg != nil {
			events <- msg
		}
	}
}

// streamUpdates prints each update frame until the connection or ctx ends.
func streamUpdates(ctx context.Context, conn *websocket.Conn, cmd *cobra.Command) error {
	go func() {
		<-ctx.Done()
		conn.Close()
	}()
	out := cmd.OutOrStdout()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("reading updates: %w", err)
		}
		if decodeUpdate(data) == nil {
			continue
		}
		if _, err := fmt.Fprintln(out, string(data)); err != nil {
			return err
		}
	}
}
