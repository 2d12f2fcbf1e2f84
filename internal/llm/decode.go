package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// bareDecimal matches numbers written as ".8" or "-.8" after a separator.
var bareDecimal = regexp.MustCompile(`([:,\[]\s*-?)\.(\d)`)

// DecodeJSON reads the first JSON object in a model reply into T. Text
// before the opening brace and after the matching close is ignored, which
// covers prose and markdown fences around the object. check, when set,
// validates the decoded value.
func DecodeJSON[T any](content string, check func(T) error) (T, error) {
	var zero T

	start := strings.IndexByte(content, '{')
	if start < 0 {
		return zero, fmt.Errorf("%w: no JSON object in reply", ErrInvalidOutput)
	}
	body := bareDecimal.ReplaceAllString(content[start:], "${1}0.$2")

	var v T
	if err := json.NewDecoder(strings.NewReader(body)).Decode(&v); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if check != nil {
		if err := check(v); err != nil {
			return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
		}
	}
	return v, nil
}
