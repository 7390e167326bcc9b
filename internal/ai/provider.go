// README: Provider selection from startup configuration.
package ai

import (
	"context"
	"fmt"
)

// Provider is a Generator that owns client resources.
type Provider interface {
	Generator
	Close() error
}

// Settings selects and configures one provider.
type Settings struct {
	Name        string
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float32
}

// NewProvider builds the provider named by s.Name.
func NewProvider(ctx context.Context, s Settings) (Provider, error) {
	var (
		p   Provider
		err error
	)
	switch s.Name {
	case ProviderGemini:
		p, err = NewGeminiProvider(ctx, s.APIKey, s.Model, s.Temperature)
	case ProviderOpenAI:
		p, err = NewOpenAIProvider(ctx, s.APIKey, s.BaseURL, s.Model, s.Temperature)
	default:
		return nil, fmt.Errorf("unknown ai provider %q", s.Name)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
