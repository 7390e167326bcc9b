// README: Generation audit entries (one row per model call).
package genlog

import "time"

// Outcome values. Failure outcomes reuse the itinerary error kinds.
const (
	OutcomeSuccess = "success"
	OutcomeCached  = "cached"
)

// MaxRawOutput bounds the stored model text.
const MaxRawOutput = 64 * 1024

// Entry records one generation attempt.
type Entry struct {
	PromptKey string
	Provider  string
	Outcome   string
	RawOutput string
	Detail    string
	Latency   time.Duration
	CreatedAt time.Time
}
