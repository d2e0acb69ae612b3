// Package providers contains the LLM provider clients. Each client turns a
// single prompt into a single text completion; conversation state, tool use
// and streaming are deliberately not part of this surface.
package providers

import (
	"context"
	"errors"
)

// CompletionRequest carries one prompt plus the sampling configuration.
// System may be empty; providers that have no native system slot prepend it
// to the prompt separated by a blank line.
type CompletionRequest struct {
	System          string
	Prompt          string
	Temperature     float32
	TopP            float32
	TopK            int
	MaxOutputTokens int
}

// Client is the interface every provider implements.
type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// ErrContentBlocked is returned when the provider's safety layer refused the
// prompt. Callers match it with errors.Is.
var ErrContentBlocked = errors.New("content blocked by safety filters")
