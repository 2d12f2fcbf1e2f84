package llm

import "time"

// Config describes how to reach a local Ollama server and how the model
// is sampled for annotation prompts.
type Config struct {
	Endpoint    string
	Model       string
	Timeout     time.Duration // per attempt
	MaxRetries  int
	Temperature float64
	MaxTokens   int
	LogCalls    bool
}

// DefaultConfig targets a local Ollama on its default port. Annotation
// answers are short, so the token budget is small and sampling is cold.
func DefaultConfig() Config {
	return Config{
		Endpoint:    "http://localhost:11434",
		Model:       "llama3.2",
		Timeout:     10 * time.Second,
		MaxRetries:  1,
		Temperature: 0.1,
		MaxTokens:   256,
	}
}

// WithOverrides returns a copy of c with every non-zero argument applied.
// A negative maxRetries keeps the current value.
func (c Config) WithOverrides(endpoint, model string, timeoutMs, maxRetries int, logCalls bool) Config {
	if endpoint != "" {
		c.Endpoint = endpoint
	}
	if model != "" {
		c.Model = model
	}
	if timeoutMs > 0 {
		c.Timeout = time.Duration(timeoutMs) * time.Millisecond
	}
	if maxRetries >= 0 {
		c.MaxRetries = maxRetries
	}
	c.LogCalls = logCalls
	return c
}
