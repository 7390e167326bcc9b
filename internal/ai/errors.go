// README: Generation failure type shared by every provider.
package ai

import (
	"errors"
	"fmt"
)

// ErrEmptyResponse is wrapped when a provider answers without any text.
var ErrEmptyResponse = errors.New("empty response")

// GenerationError is returned when the remote call itself failed.
type GenerationError struct {
	Provider string
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s generation failed: %v", e.Provider, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

func generationError(provider string, err error) error {
	var ge *GenerationError
	if errors.As(err, &ge) {
		return err
	}
	return &GenerationError{Provider: provider, Err: err}
}
