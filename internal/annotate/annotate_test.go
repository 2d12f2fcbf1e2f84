package annotate

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/alexanderramin/cinder/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallback_NeutralOnError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	failing := Func(func(context.Context, string) (domain.Annotation, error) {
		return domain.Annotation{}, errors.New("model offline")
	})

	a, err := WithFallback(failing, logger).Annotate(context.Background(), "some text")
	require.NoError(t, err)
	assert.Zero(t, a.Sentiment)
	assert.Zero(t, a.Stress)
	assert.Equal(t, 9, a.Indicators.TextLength)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "model offline")
}

func TestFallback_ClampsPrimaryOutput(t *testing.T) {
	wild := Func(func(context.Context, string) (domain.Annotation, error) {
		return domain.Annotation{Sentiment: -4, Stress: 9}, nil
	})

	a, err := WithFallback(wild, nil).Annotate(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, -1.0, a.Sentiment)
	assert.Equal(t, 1.0, a.Stress)
}

func TestNew(t *testing.T) {
	a, err := New(ProviderKeyword, Deps{})
	require.NoError(t, err)
	assert.IsType(t, Keyword{}, a.primary)

	_, err = New(ProviderOllama, Deps{})
	assert.Error(t, err)

	_, err = New(ProviderOpenAI, Deps{})
	assert.Error(t, err)

	_, err = New("vertex", Deps{})
	assert.ErrorIs(t, err, ErrUnknownProvider)
}
