package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyReply means the model returned no content at all.
	ErrEmptyReply = errors.New("llm returned empty reply")

	// ErrMalformedReply means the content could not be parsed into the
	// requested shape. Never conflated with a valid low-confidence
	// result.
	ErrMalformedReply = errors.New("llm returned malformed reply")
)

// validator is implemented by every reply shape.
type validator interface {
	Validate() error
}

// decodeReply parses a model reply into the requested shape. Models
// occasionally wrap JSON in markdown fences despite instructions, so the
// payload is located between the outermost braces before unmarshalling.
func decodeReply(content string, v validator) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return ErrEmptyReply
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return fmt.Errorf("%w: no JSON object in %q", ErrMalformedReply, truncate(content, 120))
	}

	if err := json.Unmarshal([]byte(content[start:end+1]), v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}
	if err := v.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
