package llm

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable means the Ollama server could not be reached.
	ErrUnavailable = errors.New("ollama server unavailable")

	// ErrTimeout means an attempt ran past Config.Timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrInvalidOutput means the reply did not hold the expected JSON.
	ErrInvalidOutput = errors.New("invalid llm output")
)

// StatusError is returned when Ollama answers with a non-200 status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("ollama returned status %d", e.Code)
	}
	return fmt.Sprintf("ollama returned status %d: %s", e.Code, e.Body)
}

// retryable reports whether another attempt could succeed.
func retryable(err error) bool {
	if errors.Is(err, ErrTimeout) || errors.Is(err, ErrUnavailable) {
		return true
	}
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.Code >= 500
}
