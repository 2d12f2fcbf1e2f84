package annotate

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/cinder/internal/domain"
	"github.com/alexanderramin/cinder/internal/llm"
)

const annotatePrompt = `You rate the emotional tone of workplace text.
Answer with a single JSON object and nothing else:
{"sentiment": number from -1 (very negative) to 1 (very positive),
 "stress": number from 0 (relaxed) to 1 (extremely stressed),
 "emotions": {"joy": 0-1, "sadness": 0-1, "anger": 0-1, "fear": 0-1},
 "confidence": number from 0 to 1}`

// modelReading is the JSON shape requested from the model.
type modelReading struct {
	Sentiment  *float64           `json:"sentiment"`
	Stress     *float64           `json:"stress"`
	Emotions   map[string]float64 `json:"emotions"`
	Confidence float64            `json:"confidence"`
}

func validateReading(r modelReading) error {
	if r.Sentiment == nil {
		return fmt.Errorf("sentiment is missing")
	}
	if r.Stress == nil {
		return fmt.Errorf("stress is missing")
	}
	if *r.Sentiment < -1 || *r.Sentiment > 1 {
		return fmt.Errorf("sentiment %v outside [-1,1]", *r.Sentiment)
	}
	if *r.Stress < 0 || *r.Stress > 1 {
		return fmt.Errorf("stress %v outside [0,1]", *r.Stress)
	}
	return nil
}

// Ollama annotates text with a local model through the LLM client.
type Ollama struct {
	client llm.Client
}

func NewOllama(client llm.Client) *Ollama {
	return &Ollama{client: client}
}

func (o *Ollama) Annotate(ctx context.Context, text string) (domain.Annotation, error) {
	if strings.TrimSpace(text) == "" {
		return domain.NeutralAnnotation(text), nil
	}

	resp, err := o.client.Chat(ctx, llm.Prompt{
		System: annotatePrompt,
		User:   text,
		JSON:   true,
	})
	if err != nil {
		return domain.Annotation{}, fmt.Errorf("ollama annotate: %w", err)
	}

	reading, err := llm.DecodeJSON(resp.Content, validateReading)
	if err != nil {
		return domain.Annotation{}, fmt.Errorf("ollama annotate: %w", err)
	}

	emotions := reading.Emotions
	if emotions == nil {
		emotions = map[string]float64{}
	}
	return domain.Annotation{
		Sentiment:  *reading.Sentiment,
		Stress:     *reading.Stress,
		Indicators: ScanStressKeywords(text),
		Emotions:   emotions,
		Confidence: reading.Confidence,
	}.Clamp(), nil
}
