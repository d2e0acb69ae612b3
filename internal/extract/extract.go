// Package extract recovers a JSON object or array from noisy model output.
// Model responses routinely wrap the payload in markdown fences or surround
// it with prose; the staged narrowing here handles those cases without a
// full JSON-repair pass.
package extract

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	jsonFenceRe = regexp.MustCompile("```json\\s*([\\s\\S]*?)\\s*```")
	anyFenceRe  = regexp.MustCompile("```\\s*([\\s\\S]*?)\\s*```")
)

// Object extracts the first JSON object from text.
func Object(text string) (json.RawMessage, error) {
	return extract(text, '{', '}')
}

// Array extracts the first JSON array from text.
func Array(text string) (json.RawMessage, error) {
	return extract(text, '[', ']')
}

func extract(text string, open, close byte) (json.RawMessage, error) {
	narrowed := narrow(strings.TrimSpace(text))

	// Greedy span: first opening bracket through last closing bracket.
	if span, ok := bracketSpan(narrowed, open, close); ok {
		if raw, err := parse(span); err == nil {
			return raw, nil
		}
	}

	// Fall back to parsing the narrowed text as-is.
	raw, err := parse(narrowed)
	if err != nil {
		return nil, fmt.Errorf("no parseable JSON %c...%c in response: %w", open, close, err)
	}
	if len(raw) == 0 || raw[0] != open {
		return nil, fmt.Errorf("response JSON does not start with %q", string(open))
	}
	return raw, nil
}

// narrow strips markdown fencing, preferring a ```json tagged block over a
// bare one.
func narrow(text string) string {
	if strings.Contains(text, "```json") {
		if m := jsonFenceRe.FindStringSubmatch(text); len(m) > 1 {
			return strings.TrimSpace(m[1])
		}
	}
	if strings.Contains(text, "```") {
		if m := anyFenceRe.FindStringSubmatch(text); len(m) > 1 {
			return strings.TrimSpace(m[1])
		}
	}
	return text
}

func bracketSpan(text string, open, close byte) (string, bool) {
	start := strings.IndexByte(text, open)
	if start == -1 {
		return "", false
	}
	end := strings.LastIndexByte(text, close)
	if end <= start {
		return "", false
	}
	return text[start : end+1], true
}

func parse(text string) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
