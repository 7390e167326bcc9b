// README: Generator contract for the remote text-generation models.
package ai

import (
	"context"
)

// Generator sends one prompt to a remote model and returns its raw text.
// Implementations report every transport failure, timeout or empty answer as
// *GenerationError and never inspect the text itself.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a plain function to Generator.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
