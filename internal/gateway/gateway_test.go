package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/pondlabs/ponder/internal/providers"
)

// fakeClient returns scripted results in order, recording each request.
type fakeClient struct {
	texts    []string
	errs     []error
	requests []providers.CompletionRequest
}

func (f *fakeClient) Complete(_ context.Context, req providers.CompletionRequest) (string, error) {
	f.requests = append(f.requests, req)
	i := len(f.requests) - 1
	var (
		text string
		err  error
	)
	if i < len(f.texts) {
		text = f.texts[i]
	}
	if i < len(f.errs) {
		err = f.errs[i]
	}
	return text, err
}

func newTestGateway(client providers.Client) (*Gateway, *[]time.Duration) {
	g := New(client, zerolog.Nop())
	var slept []time.Duration
	g.sleep = func(d time.Duration) { slept = append(slept, d) }
	return g, &slept
}

func TestCallSuccess(t *testing.T) {
	client := &fakeClient{texts: []string{"the answer is 62"}}
	g, _ := newTestGateway(client)

	got := g.Call(context.Background(), "What is 25 + 37?", "")

	if got != "the answer is 62" {
		t.Errorf("Call = %q", got)
	}
	if len(client.requests) != 1 {
		t.Fatalf("len(requests) = %d, want 1", len(client.requests))
	}
}

func TestCallComposesSystemPrompt(t *testing.T) {
	client := &fakeClient{texts: []string{"ok"}}
	g, _ := newTestGateway(client)

	g.Call(context.Background(), "user part", "system part")

	got := client.requests[0].Prompt
	if got != "system part\n\nuser part" {
		t.Errorf("composed prompt = %q", got)
	}
}

func TestCallSamplingPolicy(t *testing.T) {
	client := &fakeClient{texts: []string{"ok"}}
	g, _ := newTestGateway(client)

	g.Call(context.Background(), "q", "")

	req := client.requests[0]
	if req.Temperature != 1.0 || req.TopP != 0.95 || req.TopK != 40 || req.MaxOutputTokens != 2048 {
		t.Errorf("request sampling = %+v", req)
	}
}

func TestCallContentBlocked(t *testing.T) {
	client := &fakeClient{
		errs: []error{fmt.Errorf("%w: SAFETY", providers.ErrContentBlocked)},
	}
	g, _ := newTestGateway(client)

	got := g.Call(context.Background(), "q", "")

	if got != SentinelBlocked {
		t.Errorf("Call = %q, want %q", got, SentinelBlocked)
	}
	if len(client.requests) != 1 {
		t.Errorf("blocked prompt was retried: %d calls", len(client.requests))
	}
}

func TestCallRateLimitRetriesOnceThenSucceeds(t *testing.T) {
	client := &fakeClient{
		texts: []string{"", "recovered"},
		errs:  []error{errors.New("429 Too Many Requests"), nil},
	}
	g, slept := newTestGateway(client)

	got := g.Call(context.Background(), "q", "")

	if got != "recovered" {
		t.Errorf("Call = %q, want %q", got, "recovered")
	}
	if len(client.requests) != 2 {
		t.Errorf("len(requests) = %d, want 2", len(client.requests))
	}
	if len(*slept) != 1 || (*slept)[0] != rateLimitWait {
		t.Errorf("slept = %v, want one wait of %v", *slept, rateLimitWait)
	}
}

func TestCallRateLimitRetriesOnlyOnce(t *testing.T) {
	client := &fakeClient{
		errs: []error{
			errors.New("rate limit exceeded"),
			errors.New("rate limit exceeded"),
		},
	}
	g, slept := newTestGateway(client)

	got := g.Call(context.Background(), "q", "")

	if got != SentinelRateLimit {
		t.Errorf("Call = %q, want %q", got, SentinelRateLimit)
	}
	if len(client.requests) != 2 {
		t.Errorf("len(requests) = %d, want exactly 2", len(client.requests))
	}
	if len(*slept) != 1 {
		t.Errorf("slept %d times, want 1", len(*slept))
	}
}

func TestCallGenericError(t *testing.T) {
	client := &fakeClient{errs: []error{errors.New("connection refused")}}
	g, slept := newTestGateway(client)

	got := g.Call(context.Background(), "q", "")

	if !strings.HasPrefix(got, SentinelCallError) {
		t.Fatalf("Call = %q, want %q prefix", got, SentinelCallError)
	}
	if !strings.Contains(got, "connection refused") {
		t.Errorf("sentinel does not carry the cause: %q", got)
	}
	if len(*slept) != 0 || len(client.requests) != 1 {
		t.Errorf("generic error triggered retry machinery")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errorKind
	}{
		{"nil", nil, kindOther},
		{"status 429", errors.New("unexpected status 429"), kindRateLimit},
		{"rate limit text", errors.New("Rate Limit hit"), kindRateLimit},
		{"too many requests", errors.New("Too Many Requests"), kindRateLimit},
		{"quota", errors.New("quota exceeded for project"), kindRateLimit},
		{"other", errors.New("connection reset by peer"), kindOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classify(tt.err); got != tt.want {
				t.Errorf("classify(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
