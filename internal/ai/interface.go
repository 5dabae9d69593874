// README: Text completion provider contract and error taxonomy.
package ai

import (
	"context"
	"errors"
)

var (
	// ErrModelUnavailable signals the upstream model could not be reached or
	// returned a non-success result.
	ErrModelUnavailable = errors.New("model unavailable")
	// ErrModelTimeout signals the configured per-call timeout elapsed.
	ErrModelTimeout = errors.New("model timeout")
)

// CompletionProvider wraps a call to a language model. It has no knowledge
// of JSON schemas or travel semantics; all parsing is the caller's
// responsibility.
type CompletionProvider interface {
	// Complete sends the system prompts followed by the user message and
	// returns the raw completion text, unparsed.
	Complete(ctx context.Context, systemPrompts []string, userMessage string) (string, error)

	// Configured reports whether the provider has credentials and can be
	// expected to serve live completions.
	Configured() bool
}

// Unconfigured is the provider used when no API key is supplied. Every call
// fails with ErrModelUnavailable so callers exercise their fallback paths.
type Unconfigured struct{}

func (Unconfigured) Complete(ctx context.Context, systemPrompts []string, userMessage string) (string, error) {
	return "", ErrModelUnavailable
}

func (Unconfigured) Configured() bool { return false }
