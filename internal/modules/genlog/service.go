// README: Generation audit recorder; normalizes entries before they reach the store.
package genlog

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"
)

type inserter interface {
	Insert(ctx context.Context, e Entry) error
}

// Service records generation attempts.
type Service struct {
	store inserter
	now   func() time.Time
}

// NewService creates a Service backed by the given Store.
func NewService(store *Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Record stamps e and stores it, cutting RawOutput down to MaxRawOutput bytes.
func (s *Service) Record(ctx context.Context, e Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now().UTC()
	}
	e.RawOutput = truncate(e.RawOutput, MaxRawOutput)
	e.Detail = strings.TrimSpace(e.Detail)
	return s.store.Insert(ctx, e)
}

// truncate keeps at most max bytes of s without splitting a UTF-8 sequence.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
