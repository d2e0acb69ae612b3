package agent

// Status is the terminal state of a solve run.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Solution is the executor's structured output for one attempt.
type Solution struct {
	Answer           string `json:"answer"`
	Reasoning        string `json:"reasoning"`
	IntermediateWork string `json:"intermediate_work"`
}

// Check is a single named pass/fail verification outcome.
type Check struct {
	CheckName string `json:"check_name"`
	Passed    bool   `json:"passed"`
	Details   string `json:"details"`
}

// Metadata carries the inspection trail of a solve run. Checks are in
// insertion order; on success they cover only the winning attempt, on
// failure the whole accumulated history.
type Metadata struct {
	Plan    string  `json:"plan"`
	Checks  []Check `json:"checks"`
	Retries int     `json:"retries"`
}

// Response is the sole externally observable result of a solve run.
type Response struct {
	Answer                 string   `json:"answer"`
	Status                 Status   `json:"status"`
	ReasoningVisibleToUser string   `json:"reasoning_visible_to_user"`
	Metadata               Metadata `json:"metadata"`
}

// ToRecord flattens the response into a plain nested map for serialization
// and display.
func (r *Response) ToRecord() map[string]any {
	checks := make([]map[string]any, 0, len(r.Metadata.Checks))
	for _, c := range r.Metadata.Checks {
		checks = append(checks, map[string]any{
			"check_name": c.CheckName,
			"passed":     c.Passed,
			"details":    c.Details,
		})
	}

	return map[string]any{
		"answer":                    r.Answer,
		"status":                    string(r.Status),
		"reasoning_visible_to_user": r.ReasoningVisibleToUser,
		"metadata": map[string]any{
			"plan":    r.Metadata.Plan,
			"checks":  checks,
			"retries": r.Metadata.Retries,
		},
	}
}
