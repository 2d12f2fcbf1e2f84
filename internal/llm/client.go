package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// Prompt is a single-turn exchange with the model.
type Prompt struct {
	System string
	User   string
	JSON   bool // constrain the answer to a JSON object
}

// Reply is the model's answer to a Prompt.
type Reply struct {
	Content  string
	Model    string
	Latency  time.Duration
	Attempts int
}

// Client sends prompts to a language model.
type Client interface {
	Chat(ctx context.Context, p Prompt) (Reply, error)
}

// OllamaClient talks to the Ollama chat API.
type OllamaClient struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

var _ Client = (*OllamaClient)(nil)

func NewOllamaClient(cfg Config, observer Observer) *OllamaClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &OllamaClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
			},
		},
		observer: observer,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Format   string        `json:"format,omitempty"`
	Stream   bool          `json:"stream"`
	Options  chatOptions   `json:"options"`
}

type chatResponse struct {
	Model   string      `json:"model"`
	Message chatMessage `json:"message"`
	Done    bool        `json:"done"`
}

// Chat posts p to /api/chat. Timeouts, connection failures and 5xx
// answers are retried up to MaxRetries times while ctx is live.
func (c *OllamaClient) Chat(ctx context.Context, p Prompt) (Reply, error) {
	start := time.Now()

	body, err := json.Marshal(c.request(p))
	if err != nil {
		return Reply{}, fmt.Errorf("encoding chat request: %w", err)
	}

	var (
		resp     chatResponse
		attempts int
	)
	for {
		if err = ctx.Err(); err != nil {
			break
		}
		attempts++
		resp, err = c.post(ctx, body)
		if err == nil || !retryable(err) || attempts > c.cfg.MaxRetries {
			break
		}
	}

	event := CallEvent{Model: c.cfg.Model, Latency: time.Since(start), Attempts: attempts, Err: err}
	c.observer.OnCall(event)
	if err != nil {
		return Reply{}, err
	}
	return Reply{
		Content:  resp.Message.Content,
		Model:    resp.Model,
		Latency:  event.Latency,
		Attempts: attempts,
	}, nil
}

func (c *OllamaClient) request(p Prompt) chatRequest {
	req := chatRequest{
		Model: c.cfg.Model,
		Options: chatOptions{
			Temperature: c.cfg.Temperature,
			NumPredict:  c.cfg.MaxTokens,
		},
	}
	if p.System != "" {
		req.Messages = append(req.Messages, chatMessage{Role: "system", Content: p.System})
	}
	req.Messages = append(req.Messages, chatMessage{Role: "user", Content: p.User})
	if p.JSON {
		req.Format = "json"
	}
	return req
}

func (c *OllamaClient) post(ctx context.Context, body []byte) (chatResponse, error) {
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return chatResponse{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return chatResponse{}, classify(ctx, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return chatResponse{}, &StatusError{Code: res.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	var out chatResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return chatResponse{}, classify(ctx, fmt.Errorf("decoding chat response: %w", err))
	}
	return out, nil
}

// classify maps transport failures onto the package sentinels. ctx is the
// per-attempt context.
func classify(ctx context.Context, err error) error {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return ErrTimeout
	case ctx.Err() != nil:
		return ctx.Err()
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}
