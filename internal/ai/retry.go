// README: Capped exponential retry around a Generator.
package ai

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// Retrying re-invokes the wrapped Generator on *GenerationError only.
// MaxRetries of zero means a single attempt.
type Retrying struct {
	next        Generator
	provider    string
	maxRetries  uint64
	initialWait time.Duration
	log         *zap.Logger
}

// WithRetry wraps next. It returns next unchanged when maxRetries is zero.
func WithRetry(next Generator, provider string, maxRetries int, log *zap.Logger) Generator {
	if maxRetries <= 0 {
		return next
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Retrying{
		next:        next,
		provider:    provider,
		maxRetries:  uint64(maxRetries),
		initialWait: 500 * time.Millisecond,
		log:         log,
	}
}

func (r *Retrying) Generate(ctx context.Context, prompt string) (string, error) {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = r.initialWait
	policy := backoff.WithContext(backoff.WithMaxRetries(eb, r.maxRetries), ctx)

	var text string
	op := func() error {
		out, err := r.next.Generate(ctx, prompt)
		if err != nil {
			var ge *GenerationError
			if !errors.As(err, &ge) {
				return backoff.Permanent(err)
			}
			return err
		}
		text = out
		return nil
	}
	notify := func(err error, wait time.Duration) {
		r.log.Warn("generation failed, retrying",
			zap.String("provider", r.provider),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
	}

	if err := backoff.RetryNotify(op, policy, notify); err != nil {
		return "", generationError(r.provider, err)
	}
	return text, nil
}
