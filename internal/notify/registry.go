package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
)

// DefaultBufferSize is the number of outbound messages a client may have
// queued before new ones are dropped.
const DefaultBufferSize = 16

// Client is one live channel. Messages are queued on a bounded buffer and
// drained by the transport's writer.
type Client struct {
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

// NewClient creates a client with an outbound buffer of size n.
func NewClient(n int) *Client {
	if n <= 0 {
		n = DefaultBufferSize
	}
	return &Client{
		send: make(chan []byte, n),
		done: make(chan struct{}),
	}
}

// Outbound yields queued payloads.
func (c *Client) Outbound() <-chan []byte { return c.send }

// Done is closed once the client is closed.
func (c *Client) Done() <-chan struct{} { return c.done }

// Close marks the client closed. Safe to call more than once.
func (c *Client) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// enqueue never blocks. It fails when the client is closed or its buffer is full.
func (c *Client) enqueue(payload []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

// Registry maps user ids to their single live client.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]*Client
	logger  *slog.Logger
}

func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Registry{clients: make(map[string]*Client), logger: logger}
}

var _ Sink = (*Registry)(nil)

// Register makes c the live client for userID, closing any previous one.
func (r *Registry) Register(userID string, c *Client) {
	r.mu.Lock()
	prev := r.clients[userID]
	r.clients[userID] = c
	r.mu.Unlock()

	if prev != nil && prev != c {
		prev.Close()
		r.logger.Info("client replaced", "user_id", userID)
	}
}

// Deregister removes c if it is still the live client for userID.
func (r *Registry) Deregister(userID string, c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.clients[userID] == c {
		delete(r.clients, userID)
	}
}

// Connected reports whether userID has a live client.
func (r *Registry) Connected(userID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.clients[userID]
	return ok
}

// Len is the number of live clients.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

// Publish hands msg to userID's client without blocking.
func (r *Registry) Publish(ctx context.Context, userID string, msg Message) bool {
	payload, err := json.Marshal(msg)
	if err != nil {
		r.logger.ErrorContext(ctx, "encoding notification", "user_id", userID, "error", err.Error())
		return false
	}
	return r.PublishRaw(ctx, userID, payload)
}

// PublishRaw is Publish for an already encoded payload.
func (r *Registry) PublishRaw(ctx context.Context, userID string, payload []byte) bool {
	r.mu.RLock()
	c := r.clients[userID]
	r.mu.RUnlock()

	if c == nil {
		return false
	}
	if !c.enqueue(payload) {
		r.logger.WarnContext(ctx, "notification dropped", "user_id", userID)
		return false
	}
	return true
}

// Broadcast hands msg to every live client and returns how many accepted it.
func (r *Registry) Broadcast(ctx context.Context, msg Message) int {
	payload, err := json.Marshal(msg)
	if err != nil {
		r.logger.ErrorContext(ctx, "encoding broadcast", "error", err.Error())
		return 0
	}

	r.mu.RLock()
	targets := make([]*Client, 0, len(r.clients))
	for _, c := range r.clients {
		targets = append(targets, c)
	}
	r.mu.RUnlock()

	delivered := 0
	for _, c := range targets {
		if c.enqueue(payload) {
			delivered++
		}
	}
	return delivered
}
