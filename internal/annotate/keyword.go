package annotate

import (
	"context"
	"math"
	"strings"
	"unicode"

	"github.com/alexanderramin/cinder/internal/domain"
)

// StressKeywords are matched as lowercase substrings.
var StressKeywords = []string{
	"urgent", "asap", "immediately", "deadline", "rush", "hurry",
	"stressed", "overwhelmed", "frustrated", "exhausted", "burned out",
}

// stressSaturation is the keyword count at which stress reaches 1.
const stressSaturation = 5

var positiveWords = wordSet(
	"good", "great", "happy", "calm", "relaxed", "productive", "energized",
	"excited", "proud", "grateful", "rested", "love", "enjoyed", "enjoy",
	"accomplished", "fun", "progress", "glad", "satisfied", "focused",
)

var negativeWords = wordSet(
	"bad", "tired", "exhausted", "stressed", "overwhelmed", "frustrated",
	"anxious", "sad", "angry", "worried", "drained", "awful", "terrible",
	"hate", "sick", "behind", "late", "burned", "annoyed", "lonely", "miserable",
)

var emotionWords = map[string]map[string]bool{
	"joy":     wordSet("happy", "excited", "glad", "grateful", "proud", "fun", "enjoyed", "love"),
	"sadness": wordSet("sad", "down", "lonely", "drained", "tired", "exhausted", "miserable"),
	"anger":   wordSet("angry", "frustrated", "annoyed", "furious", "hate"),
	"fear":    wordSet("anxious", "worried", "nervous", "scared", "afraid", "overwhelmed"),
}

// Keyword is a lexicon-based annotator with no external dependencies.
type Keyword struct{}

func NewKeyword() Keyword { return Keyword{} }

func (Keyword) Annotate(_ context.Context, text string) (domain.Annotation, error) {
	indicators := ScanStressKeywords(text)

	var pos, neg int
	emotionHits := make(map[string]int)
	var totalEmotion int
	for _, w := range words(text) {
		if positiveWords[w] {
			pos++
		}
		if negativeWords[w] {
			neg++
		}
		for emotion, set := range emotionWords {
			if set[w] {
				emotionHits[emotion]++
				totalEmotion++
			}
		}
	}

	var sentiment float64
	if pos+neg > 0 {
		sentiment = float64(pos-neg) / float64(pos+neg)
	}

	emotions := make(map[string]float64, len(emotionHits))
	for emotion, n := range emotionHits {
		emotions[emotion] = float64(n) / float64(totalEmotion)
	}

	hits := pos + neg + indicators.KeywordCount
	return domain.Annotation{
		Sentiment:  sentiment,
		Stress:     math.Min(float64(indicators.KeywordCount)/stressSaturation, 1),
		Indicators: indicators,
		Emotions:   emotions,
		Confidence: math.Min(0.3+0.1*float64(hits), 0.8),
	}, nil
}

// ScanStressKeywords lists the stress keywords present in text.
func ScanStressKeywords(text string) domain.StressIndicators {
	lower := strings.ToLower(text)
	found := []string{}
	for _, kw := range StressKeywords {
		if strings.Contains(lower, kw) {
			found = append(found, kw)
		}
	}
	return domain.StressIndicators{
		Keywords:     found,
		KeywordCount: len(found),
		TextLength:   len(text),
	}
}

func words(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
}

func wordSet(ws ...string) map[string]bool {
	m := make(map[string]bool, len(ws))
	for _, w := range ws {
		m[w] = true
	}
	return m
}
