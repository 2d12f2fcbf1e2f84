// Package annotate reads sentiment, stress and emotions from free text.
package annotate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alexanderramin/cinder/internal/domain"
	"github.com/alexanderramin/cinder/internal/llm"
	"github.com/openai/openai-go"
)

// Annotator reads one piece of text.
type Annotator interface {
	Annotate(ctx context.Context, text string) (domain.Annotation, error)
}

// Func adapts a plain function to Annotator.
type Func func(ctx context.Context, text string) (domain.Annotation, error)

func (f Func) Annotate(ctx context.Context, text string) (domain.Annotation, error) {
	return f(ctx, text)
}

const (
	ProviderKeyword = "keyword"
	ProviderOllama  = "ollama"
	ProviderOpenAI  = "openai"
)

// ErrUnknownProvider is returned by New for unsupported provider names.
var ErrUnknownProvider = errors.New("unknown annotator provider")

// Deps carries the clients a provider may need.
type Deps struct {
	LLM         llm.Client
	OpenAI      *openai.Client
	OpenAIModel string
	Logger      *slog.Logger
}

// New builds the annotator for provider, wrapped so it never fails.
func New(provider string, deps Deps) (*Fallback, error) {
	var primary Annotator
	switch provider {
	case ProviderKeyword, "":
		primary = NewKeyword()
	case ProviderOllama:
		if deps.LLM == nil {
			return nil, fmt.Errorf("%s annotator: llm client is required", provider)
		}
		primary = NewOllama(deps.LLM)
	case ProviderOpenAI:
		if deps.OpenAI == nil {
			return nil, fmt.Errorf("%s annotator: openai client is required", provider)
		}
		primary = NewOpenAI(deps.OpenAI, deps.OpenAIModel)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
	}
	return WithFallback(primary, deps.Logger), nil
}

// Fallback substitutes a neutral annotation whenever the primary annotator
// fails. Its Annotate never returns an error.
type Fallback struct {
	primary Annotator
	logger  *slog.Logger
}

func WithFallback(primary Annotator, logger *slog.Logger) *Fallback {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Fallback{primary: primary, logger: logger}
}

func (f *Fallback) Annotate(ctx context.Context, text string) (domain.Annotation, error) {
	a, err := f.primary.Annotate(ctx, text)
	if err != nil {
		f.logger.WarnContext(ctx, "annotator failed, using neutral annotation",
			"error", err.Error(),
			"text_length", len(text),
		)
		return domain.NeutralAnnotation(text), nil
	}
	return a.Clamp(), nil
}
