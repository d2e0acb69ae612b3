package gateway

import "strings"

// errorKind is a coarse classification of provider call failures. The
// gateway only needs to distinguish rate limiting (worth one inline retry)
// from everything else.
type errorKind int

const (
	kindOther errorKind = iota
	kindRateLimit
)

// classify inspects the error text for rate-limit indicators. Provider SDKs
// do not agree on error types, so string matching on the usual 429/quota
// markers is the portable test.
func classify(err error) errorKind {
	if err == nil {
		return kindOther
	}

	errStr := strings.ToLower(err.Error())

	if strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests") ||
		strings.Contains(errStr, "quota") {
		return kindRateLimit
	}

	return kindOther
}
