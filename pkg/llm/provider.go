package llm

import (
	"context"
	"errors"
)

// ErrEmptyCompletion is returned when the backend answered but produced no
// content. Callers treat it like any other generation failure.
var ErrEmptyCompletion = errors.New("llm returned empty completion")

// Message is a chat message in a provider-agnostic format.
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// Option sets optional generation parameters.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // override the provider's default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// LLMProvider is the contract for any text-generation backend. Calls are
// single-attempt: no retry lives below this interface, and a context timeout
// is equivalent to a failed generation.
type LLMProvider interface {
	// Chat sends a message history to the model and returns the response.
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single user prompt (convenience wrapper over Chat).
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}
