// Package bench runs the agent against a fixed question suite and scores
// the answers with a substring predicate. It is fixture tooling around the
// solve loop, not part of the loop itself.
package bench

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/pondlabs/ponder/internal/agent"
)

// Solver is what the runner drives; satisfied by *agent.Agent.
type Solver interface {
	Solve(ctx context.Context, question string) *agent.Response
}

// Result is the outcome of one benchmark case.
type Result struct {
	Category           string   `json:"category"`
	Description        string   `json:"description"`
	Question           string   `json:"question"`
	Expected           []string `json:"expected"`
	Answer             string   `json:"answer"`
	Status             string   `json:"status"`
	AnswerCorrect      bool     `json:"answer_correct"`
	VerificationPassed bool     `json:"verification_passed"`
	Retries            int      `json:"retries"`
	NumChecks          int      `json:"num_checks"`
	DurationSeconds    float64  `json:"duration_seconds"`
}

// Summary aggregates a full suite run.
type Summary struct {
	Results      []Result `json:"results"`
	EasyCorrect  int      `json:"easy_correct"`
	EasyTotal    int      `json:"easy_total"`
	TrickCorrect int      `json:"tricky_correct"`
	TrickTotal   int      `json:"tricky_total"`
}

// Correct returns the overall number of correct answers.
func (s *Summary) Correct() int { return s.EasyCorrect + s.TrickCorrect }

// Total returns the overall number of cases.
func (s *Summary) Total() int { return s.EasyTotal + s.TrickTotal }

// Runner executes the fixed suite sequentially.
type Runner struct {
	solver Solver
	log    zerolog.Logger
}

// NewRunner creates a Runner around a solver.
func NewRunner(solver Solver, log zerolog.Logger) *Runner {
	return &Runner{solver: solver, log: log}
}

// Run executes every easy and tricky case in order and returns the summary.
// It stops early only if the context is cancelled.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{
		EasyTotal:  len(EasyCases),
		TrickTotal: len(TrickyCases),
	}

	run := func(category string, cases []Case, correct *int) error {
		for i, tc := range cases {
			if err := ctx.Err(); err != nil {
				return err
			}

			r.log.Info().Str("category", category).Int("case", i+1).Str("description", tc.Description).Msg("running benchmark case")

			start := time.Now()
			resp := r.solver.Solve(ctx, tc.Question)
			elapsed := time.Since(start)

			res := Result{
				Category:           category,
				Description:        tc.Description,
				Question:           tc.Question,
				Expected:           tc.ExpectedAnswerContains,
				Answer:             resp.Answer,
				Status:             string(resp.Status),
				AnswerCorrect:      CheckAnswer(resp.Answer, tc.ExpectedAnswerContains),
				VerificationPassed: resp.Status == agent.StatusSuccess,
				Retries:            resp.Metadata.Retries,
				NumChecks:          len(resp.Metadata.Checks),
				DurationSeconds:    elapsed.Seconds(),
			}
			if res.AnswerCorrect {
				*correct++
			}
			summary.Results = append(summary.Results, res)
		}
		return nil
	}

	if err := run("easy", EasyCases, &summary.EasyCorrect); err != nil {
		return summary, err
	}
	if err := run("tricky", TrickyCases, &summary.TrickCorrect); err != nil {
		return summary, err
	}
	return summary, nil
}

// WriteResults writes the per-case results as an indented JSON file,
// overwriting any previous run.
func WriteResults(path string, summary *Summary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write results file: %w", err)
	}
	return nil
}
