package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wsTestServer(t *testing.T, r *Registry) *httptest.Server {
	t.Helper()
	h := NewWSHandler(r, nil)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		h.Serve(w, req, strings.TrimPrefix(req.URL.Path, "/ws/"))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, userID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/" + userID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, 2*time.Second, 10*time.Millisecond)
}

func TestWSHandler_ReceivesPublishedMessages(t *testing.T) {
	r := NewRegistry(nil)
	srv := wsTestServer(t, r)
	conn := dial(t, srv, "u1")
	waitFor(t, func() bool { return r.Connected("u1") })

	require.True(t, r.Publish(context.Background(), "u1", Message{Type: TypeBurnoutUpdate, Data: map[string]float64{"overall_score": 0.7}}))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, TypeBurnoutUpdate, msg.Type)
}

func TestWSHandler_EchoesJSON(t *testing.T) {
	r := NewRegistry(nil)
	srv := wsTestServer(t, r)
	conn := dial(t, srv, "u1")

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"ping","n":1}`)))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`not json`)))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"ping","n":2}`)))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var first, second map[string]any
	require.NoError(t, conn.ReadJSON(&first))
	require.NoError(t, conn.ReadJSON(&second))
	assert.Equal(t, float64(1), first["n"])
	assert.Equal(t, float64(2), second["n"])
}

func TestWSHandler_DisconnectDeregisters(t *testing.T) {
	r := NewRegistry(nil)
	srv := wsTestServer(t, r)
	conn := dial(t, srv, "u1")
	waitFor(t, func() bool { return r.Connected("u1") })

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	conn.Close()

	waitFor(t, func() bool { return !r.Connected("u1") })
	assert.False(t, r.Publish(context.Background(), "u1", Message{Type: "late"}))
}

func TestWSHandler_ReconnectReplacesOldConnection(t *testing.T) {
	r := NewRegistry(nil)
	srv := wsTestServer(t, r)
	first := dial(t, srv, "u1")
	waitFor(t, func() bool { return r.Connected("u1") })

	second := dial(t, srv, "u1")

	// The first connection receives a close frame once replaced.
	require.NoError(t, first.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := first.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)

	waitFor(t, func() bool {
		return r.Publish(context.Background(), "u1", Message{Type: "hello"})
	})
	require.NoError(t, second.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg Message
	require.NoError(t, second.ReadJSON(&msg))
	assert.Equal(t, "hello", msg.Type)
	assert.Equal(t, 1, r.Len())
}
