// Package agent implements the plan/execute/verify reasoning loop with
// bounded retries. Each attempt runs the three stages in strict sequence;
// the loop stops on the first attempt whose verification checks all pass.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pondlabs/ponder/internal/extract"
)

// Caller is the gateway surface the stages use. Call never fails; degraded
// outcomes come back as sentinel text (see the gateway package).
type Caller interface {
	Call(ctx context.Context, prompt, system string) string
}

// Agent coordinates the three stages and the retry policy.
type Agent struct {
	gw         Caller
	maxRetries int
	log        zerolog.Logger
}

// New creates an Agent. maxRetries is the number of additional attempts
// after the first; it must be non-negative (enforced by config validation).
func New(gw Caller, maxRetries int, log zerolog.Logger) *Agent {
	return &Agent{
		gw:         gw,
		maxRetries: maxRetries,
		log:        log,
	}
}

// Plan builds a step-by-step plan for the question. The output is opaque
// text consumed only as context by Execute; planning failures are not
// special-cased and flow through as plan text.
func (a *Agent) Plan(ctx context.Context, question string) string {
	return a.gw.Call(ctx, plannerPrompt(question), plannerSystemPrompt)
}

// Execute follows the plan and parses the model's JSON object into a
// Solution. On extraction or validation failure it returns an error-flagged
// Solution rather than failing; the outer retry loop is the only retry
// mechanism.
func (a *Agent) Execute(ctx context.Context, question, plan string) Solution {
	raw := a.gw.Call(ctx, executorPrompt(question, plan), executorSystemPrompt)

	doc, err := extract.Object(raw)
	if err == nil {
		err = validate(solutionSchema, doc)
	}
	if err != nil {
		a.log.Warn().Err(err).Msg("executor response did not parse as a solution")
		return Solution{
			Answer:           "Error parsing response",
			Reasoning:        truncate(raw, 200),
			IntermediateWork: raw,
		}
	}

	var sol Solution
	if err := json.Unmarshal(doc, &sol); err != nil {
		a.log.Warn().Err(err).Msg("executor response did not parse as a solution")
		return Solution{
			Answer:           "Error parsing response",
			Reasoning:        truncate(raw, 200),
			IntermediateWork: raw,
		}
	}
	return sol
}

// Verify asks the model to re-check the solution and parses the returned
// JSON array into Checks. Parse and validation failures fail closed: they
// yield a single failing check quoting the start of the raw response.
//
// The original behavior passed a synthetic check whenever the unparseable
// response merely mentioned "correct"; that let format noise masquerade as
// verification, so it was dropped in favor of the fail-closed default.
func (a *Agent) Verify(ctx context.Context, question string, sol Solution) []Check {
	raw := a.gw.Call(ctx, verifierPrompt(question, sol), verifierSystemPrompt)

	doc, err := extract.Array(raw)
	if err == nil {
		err = validate(checksSchema, doc)
	}

	var checks []Check
	if err == nil {
		err = json.Unmarshal(doc, &checks)
	}

	if err != nil {
		a.log.Warn().Err(err).Str("response", truncate(raw, 200)).Msg("could not parse verification checks")
		return []Check{{
			CheckName: "Verification Error",
			Passed:    false,
			Details:   "Could not parse verification properly. Raw response: " + truncate(raw, 200),
		}}
	}
	return checks
}

// Solve runs the full pipeline with up to maxRetries+1 attempts. Success
// requires a non-empty check set with every check passed; an empty check
// set counts as failure, never as a vacuous pass. Failed attempts restart
// from planning with no feedback carried into the next attempt's prompts.
func (a *Agent) Solve(ctx context.Context, question string) *Response {
	var (
		allChecks []Check
		plan      string
	)

	attempt := 0
	for attempt <= a.maxRetries {
		plan = a.Plan(ctx, question)
		sol := a.Execute(ctx, question, plan)
		checks := a.Verify(ctx, question, sol)
		allChecks = append(allChecks, checks...)

		if len(checks) > 0 && allPassed(checks) {
			a.log.Info().Int("retries", attempt).Int("checks", len(checks)).Msg("solution verified")
			return &Response{
				Answer:                 sol.Answer,
				Status:                 StatusSuccess,
				ReasoningVisibleToUser: sol.Reasoning,
				Metadata: Metadata{
					Plan:    plan,
					Checks:  checks,
					Retries: attempt,
				},
			}
		}

		a.log.Info().Int("attempt", attempt).Int("failed_checks", countFailed(checks)).Msg("verification failed")
		attempt++
	}

	summary := failureSummary(allChecks, 3)
	return &Response{
		Answer:                 "Unable to verify solution",
		Status:                 StatusFailed,
		ReasoningVisibleToUser: fmt.Sprintf("Verification failed after %d retries. Issues: %s", a.maxRetries, summary),
		Metadata: Metadata{
			Plan:    plan,
			Checks:  allChecks,
			Retries: a.maxRetries,
		},
	}
}

func allPassed(checks []Check) bool {
	for _, c := range checks {
		if !c.Passed {
			return false
		}
	}
	return true
}

func countFailed(checks []Check) int {
	n := 0
	for _, c := range checks {
		if !c.Passed {
			n++
		}
	}
	return n
}

// failureSummary joins the last up-to-n failing checks across the whole
// accumulated history as "name: details" pairs.
func failureSummary(checks []Check, n int) string {
	var failing []Check
	for _, c := range checks {
		if !c.Passed {
			failing = append(failing, c)
		}
	}
	if len(failing) > n {
		failing = failing[len(failing)-n:]
	}

	parts := make([]string, 0, len(failing))
	for _, c := range failing {
		parts = append(parts, fmt.Sprintf("%s: %s", c.CheckName, c.Details))
	}
	return strings.Join(parts, "; ")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
