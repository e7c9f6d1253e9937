package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrGeneration matches every failure returned by Generate.
var ErrGeneration = errors.New("generation failed")

// Error is the single failure category for generation calls. Message is
// safe to show to the athlete; Err keeps the underlying cause for logs.
type Error struct {
	Provider string
	Message  string
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrGeneration}
	}
	return []error{ErrGeneration, e.Err}
}

// Generate calls p once with a deadline of cfg.Timeout (DefaultTimeout when
// unset). Any failure, including an empty reply, comes back as *Error.
func Generate(ctx context.Context, p Provider, prompt string, cfg Config) (string, error) {
	if cfg.Model == "" {
		cfg.Model = p.DefaultModel()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	text, err := p.Generate(ctx, prompt, cfg)
	if err != nil {
		var gerr *Error
		if errors.As(err, &gerr) {
			return "", gerr
		}
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			return "", &Error{Provider: p.Name(), Message: fmt.Sprintf("no response within %s, please try again", timeout), Err: err}
		case errors.Is(err, context.Canceled):
			return "", &Error{Provider: p.Name(), Message: "the request was cancelled", Err: err}
		default:
			return "", &Error{Provider: p.Name(), Message: "the plan could not be generated, please try again", Err: err}
		}
	}
	if strings.TrimSpace(text) == "" {
		return "", &Error{Provider: p.Name(), Message: "the provider returned an empty plan"}
	}
	return text, nil
}

// messageForStatus turns an HTTP status from a provider API into a message
// for the athlete.
func messageForStatus(code int) string {
	switch {
	case code == http.StatusTooManyRequests:
		return "the generation quota is exhausted, please try again later"
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return "the generation service rejected the API key"
	case code == http.StatusBadRequest || code == http.StatusNotFound:
		return "the generation service rejected the request"
	case code >= 500:
		return "the generation service is unavailable, please try again"
	default:
		return fmt.Sprintf("the generation service returned status %d", code)
	}
}
