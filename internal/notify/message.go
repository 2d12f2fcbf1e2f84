// Package notify pushes score updates to a user's live client channel.
package notify

import (
	"context"

	"github.com/alexanderramin/cinder/internal/domain"
)

const TypeBurnoutUpdate = "burnout_update"

// Message is the envelope written to clients.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// BurnoutUpdate wraps a freshly calculated score.
func BurnoutUpdate(score domain.BurnoutScore) Message {
	return Message{Type: TypeBurnoutUpdate, Data: score}
}

// Sink delivers messages to a user's live channel. Publish reports whether
// the message was handed to a connected client; undeliverable messages are
// dropped.
type Sink interface {
	Publish(ctx context.Context, userID string, msg Message) bool
}

// NoopSink drops every message.
type NoopSink struct{}

func (NoopSink) Publish(context.Context, string, Message) bool { return false }
