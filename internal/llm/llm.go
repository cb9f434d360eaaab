// Package llm provides a provider-agnostic chat-completion interface with
// interchangeable backends.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/park285/chatgpt-move/internal/llmfast"
)

const (
	BackendFastHTTP = "fasthttp"
	BackendOpenAI   = "openai"
)

var (
	// ErrUnavailable is returned by New when no backend can be built.
	ErrUnavailable = errors.New("completion client unavailable")
	// ErrEmptyChoices is returned when a response carries no choices.
	ErrEmptyChoices = errors.New("no choices in response")
	// ErrMalformedResponse is returned when a 2xx body cannot be decoded.
	ErrMalformedResponse = errors.New("malformed response")
)

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message represents a single conversation turn.
type Message struct {
	Role    string
	Content string
}

type Request struct {
	Model       string
	Messages    []Message
	MaxTokens   int
	Temperature float32
}

// Completer performs one chat completion and returns the first choice's
// message content as received.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// StatusError carries the HTTP status of a rejected request.
type StatusError struct {
	Status int
	Err    error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d: %v", e.Status, e.Err)
}

func (e *StatusError) Unwrap() error { return e.Err }

// IsTimeout reports whether err from either backend is a deadline or
// transport timeout.
func IsTimeout(err error) bool { return llmfast.IsTimeout(err) }

type Config struct {
	Backend string
	BaseURL string
	APIKey  string
	// Timeout applies to the fasthttp backend only.
	Timeout time.Duration
	Headers func() map[string]string
}

// New builds the configured backend. Any construction failure wraps ErrUnavailable.
func New(cfg Config) (Completer, error) {
	var (
		c   Completer
		err error
	)
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", BackendFastHTTP:
		c, err = newFastHTTP(cfg)
	case BackendOpenAI:
		c, err = newOpenAI(cfg)
	default:
		err = fmt.Errorf("unknown backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return c, nil
}
