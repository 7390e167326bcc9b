package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyGenerator struct {
	calls    int
	failures int
	err      error
}

func (g *flakyGenerator) Generate(_ context.Context, _ string) (string, error) {
	g.calls++
	if g.calls <= g.failures {
		return "", g.err
	}
	return `{"ok":true}`, nil
}

func fastRetry(next Generator, maxRetries int) Generator {
	g := WithRetry(next, "stub", maxRetries, nil)
	if r, ok := g.(*Retrying); ok {
		r.initialWait = time.Millisecond
	}
	return g
}

func TestWithRetry_ZeroRetriesIsPassThrough(t *testing.T) {
	stub := &flakyGenerator{}
	assert.Same(t, Generator(stub), WithRetry(stub, "stub", 0, nil))
}

func TestRetrying_RecoversFromGenerationErrors(t *testing.T) {
	stub := &flakyGenerator{failures: 2, err: &GenerationError{Provider: "stub", Err: errors.New("503")}}
	out, err := fastRetry(stub, 3).Generate(context.Background(), "p")

	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, out)
	assert.Equal(t, 3, stub.calls)
}

func TestRetrying_GivesUpAfterMaxRetries(t *testing.T) {
	stub := &flakyGenerator{failures: 10, err: &GenerationError{Provider: "stub", Err: errors.New("timeout")}}
	_, err := fastRetry(stub, 2).Generate(context.Background(), "p")

	var ge *GenerationError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, 3, stub.calls)
}

func TestRetrying_DoesNotRetryOtherErrors(t *testing.T) {
	stub := &flakyGenerator{failures: 10, err: errors.New("bad prompt")}
	_, err := fastRetry(stub, 5).Generate(context.Background(), "p")

	var ge *GenerationError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, "stub", ge.Provider)
	assert.Equal(t, 1, stub.calls)
}

func TestGenerationError_KeepsExistingWrapper(t *testing.T) {
	inner := &GenerationError{Provider: "gemini", Err: ErrEmptyResponse}
	err := generationError("retry", inner)

	assert.Same(t, error(inner), err)
	assert.ErrorIs(t, err, ErrEmptyResponse)
}
