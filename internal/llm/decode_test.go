package llm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reading struct {
	Sentiment float64            `json:"sentiment"`
	Mood      string             `json:"mood"`
	Emotions  map[string]float64 `json:"emotions"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    reading
	}{
		{
			name:    "bare object",
			content: `{"sentiment":0.4,"mood":"calm"}`,
			want:    reading{Sentiment: 0.4, Mood: "calm"},
		},
		{
			name:    "markdown fence",
			content: "```json\n{\"sentiment\":-0.2,\"mood\":\"tense\"}\n```",
			want:    reading{Sentiment: -0.2, Mood: "tense"},
		},
		{
			name:    "surrounding prose",
			content: "Here is the reading:\n{\"mood\":\"drained\"}\nLet me know if you need more.",
			want:    reading{Mood: "drained"},
		},
		{
			name:    "nested object",
			content: `{"mood":"tense","emotions":{"fear":0.7}}`,
			want:    reading{Mood: "tense", Emotions: map[string]float64{"fear": 0.7}},
		},
		{
			name:    "braces inside strings",
			content: `{"mood":"calm \"}{\" mostly"}`,
			want:    reading{Mood: `calm "}{" mostly`},
		},
		{
			name:    "bare decimals",
			content: `{"sentiment": -.6, "emotions": {"joy": .25}}`,
			want:    reading{Sentiment: -0.6, Emotions: map[string]float64{"joy": 0.25}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeJSON[reading](tt.content, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeJSON_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no object", "I cannot rate this text."},
		{"broken object", `{"mood":"calm", broken}`},
		{"truncated object", `{"mood":"calm"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeJSON[reading](tt.content, nil)
			assert.ErrorIs(t, err, ErrInvalidOutput)
		})
	}
}

func TestDecodeJSON_Check(t *testing.T) {
	inRange := func(r reading) error {
		if r.Sentiment < -1 || r.Sentiment > 1 {
			return errors.New("sentiment outside [-1,1]")
		}
		return nil
	}

	got, err := DecodeJSON(`{"sentiment":0.9}`, inRange)
	require.NoError(t, err)
	assert.Equal(t, 0.9, got.Sentiment)

	got, err = DecodeJSON(`{"sentiment":1.5}`, inRange)
	assert.ErrorIs(t, err, ErrInvalidOutput)
	assert.Contains(t, err.Error(), "sentiment outside")
	assert.Zero(t, got)
}
