// Package gateway wraps a provider client behind the call contract the
// reasoning stages rely on: a call always yields text. Transport failures,
// safety blocks and rate limiting degrade to sentinel strings instead of
// errors, so downstream parsing treats every response uniformly.
package gateway

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/pondlabs/ponder/internal/providers"
)

// Sampling policy constants. These are fixed for every call the agent makes;
// they are not per-call parameters.
const (
	Temperature     float32 = 1.0
	TopP            float32 = 0.95
	TopK                    = 40
	MaxOutputTokens         = 2048
)

// rateLimitWait is how long to pause before the single inline retry of a
// rate-limited call.
const rateLimitWait = 2 * time.Second

// Sentinel prefixes returned in place of raised errors.
const (
	SentinelBlocked   = "Error: Content was blocked by safety filters."
	SentinelRateLimit = "Error: Rate limit exceeded. Please wait a moment and try again."
	SentinelCallError = "Error calling LLM: "
)

// Gateway is the boundary component in front of the completion service.
type Gateway struct {
	client providers.Client
	log    zerolog.Logger
	sleep  func(time.Duration)
}

// New creates a Gateway around a provider client.
func New(client providers.Client, log zerolog.Logger) *Gateway {
	return &Gateway{
		client: client,
		log:    log,
		sleep:  time.Sleep,
	}
}

// Call sends a composed prompt to the completion service and returns the
// response text. When a system prompt is given it is concatenated before the
// user prompt, separated by a blank line. Call never returns an error: every
// failure path degrades to a sentinel string.
func (g *Gateway) Call(ctx context.Context, prompt, system string) string {
	full := prompt
	if system != "" {
		full = system + "\n\n" + prompt
	}

	req := providers.CompletionRequest{
		Prompt:          full,
		Temperature:     Temperature,
		TopP:            TopP,
		TopK:            TopK,
		MaxOutputTokens: MaxOutputTokens,
	}

	text, err := g.client.Complete(ctx, req)
	if err == nil {
		return text
	}

	if errors.Is(err, providers.ErrContentBlocked) {
		g.log.Warn().Err(err).Msg("prompt blocked by safety filters")
		return SentinelBlocked
	}

	if classify(err) == kindRateLimit {
		g.log.Warn().Err(err).Dur("wait", rateLimitWait).Msg("rate limited, retrying once")
		g.sleep(rateLimitWait)

		text, err = g.client.Complete(ctx, req)
		if err == nil {
			return text
		}
		g.log.Error().Err(err).Msg("rate limit retry failed")
		return SentinelRateLimit
	}

	g.log.Error().Err(err).Msg("LLM call failed")
	return SentinelCallError + err.Error()
}
