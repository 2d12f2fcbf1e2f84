package domain

import "math"

// Annotation is the annotator's reading of a piece of free text.
type Annotation struct {
	Sentiment  float64            `json:"sentiment"`
	Stress     float64            `json:"stress"`
	Indicators StressIndicators   `json:"indicators"`
	Emotions   map[string]float64 `json:"emotions,omitempty"`
	Confidence float64            `json:"confidence"`
}

// StressIndicators is the structured evidence behind a stress reading.
type StressIndicators struct {
	Keywords     []string `json:"found_keywords"`
	KeywordCount int      `json:"keyword_count"`
	TextLength   int      `json:"text_length"`
}

// NeutralAnnotation is substituted whenever the annotator cannot answer.
func NeutralAnnotation(text string) Annotation {
	return Annotation{
		Indicators: StressIndicators{Keywords: []string{}, TextLength: len(text)},
		Emotions:   map[string]float64{},
		Confidence: 0,
	}
}

// Clamp forces every numeric field into its documented range.
func (a Annotation) Clamp() Annotation {
	a.Sentiment = clampRange(a.Sentiment, -1, 1)
	a.Stress = clampRange(a.Stress, 0, 1)
	a.Confidence = clampRange(a.Confidence, 0, 1)
	for k, v := range a.Emotions {
		a.Emotions[k] = clampRange(v, 0, 1)
	}
	if a.Indicators.Keywords == nil {
		a.Indicators.Keywords = []string{}
	}
	return a
}

func clampRange(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(lo, math.Min(hi, v))
}
