// README: Config loader (viper, env + optional .env) for HTTP, AI provider, storage and CORS settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type AIConfig struct {
	Provider    string
	GoogleKey   string
	OpenAIKey   string
	Model       string
	BaseURL     string
	Temperature float32
	Timeout     time.Duration
	MaxRetries  int
	Strict      bool
}

// APIKey returns the credential of the selected provider.
func (c AIConfig) APIKey() string {
	if c.Provider == ProviderOpenAI {
		return c.OpenAIKey
	}
	return c.GoogleKey
}

type CORSConfig struct {
	Origins  []string
	Patterns []*regexp.Regexp
}

type Config struct {
	HTTP struct {
		Addr string
	}
	Log struct {
		Level string
	}
	AI   AIConfig
	CORS CORSConfig
	DB   struct {
		DSN string
	}
	Redis struct {
		Addr string
	}
	Cache struct {
		TTL time.Duration
	}
	Maps struct {
		APIKey string
	}
}

// Load reads the environment (and ./.env when present). A missing provider
// credential, an unknown provider or a bad origin pattern is an error.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	if _, err := os.Stat(".env"); err == nil {
		v.SetConfigFile(".env")
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read .env: %w", err)
		}
	}

	var cfg Config
	cfg.HTTP.Addr = v.GetString("PLANAI_HTTP_ADDR")
	cfg.Log.Level = v.GetString("PLANAI_LOG_LEVEL")
	cfg.AI = AIConfig{
		Provider:    strings.ToLower(strings.TrimSpace(v.GetString("PLANAI_PROVIDER"))),
		GoogleKey:   v.GetString("GOOGLE_API_KEY"),
		OpenAIKey:   v.GetString("OPENAI_API_KEY"),
		Model:       v.GetString("PLANAI_MODEL"),
		BaseURL:     v.GetString("PLANAI_OPENAI_BASE_URL"),
		Temperature: float32(v.GetFloat64("PLANAI_TEMPERATURE")),
		Timeout:     v.GetDuration("PLANAI_GENERATION_TIMEOUT"),
		MaxRetries:  v.GetInt("PLANAI_MAX_RETRIES"),
		Strict:      v.GetBool("PLANAI_STRICT_PLAN"),
	}
	cfg.CORS.Origins = splitList(v.GetString("PLANAI_CORS_ORIGINS"))
	cfg.DB.DSN = v.GetString("PLANAI_DB_DSN")
	cfg.Redis.Addr = v.GetString("PLANAI_REDIS_ADDR")
	cfg.Cache.TTL = v.GetDuration("PLANAI_CACHE_TTL")
	cfg.Maps.APIKey = v.GetString("GOOGLE_MAPS_API_KEY")

	var errs []error
	switch cfg.AI.Provider {
	case ProviderGemini:
		if cfg.AI.GoogleKey == "" {
			errs = append(errs, errors.New("GOOGLE_API_KEY is required for the gemini provider"))
		}
	case ProviderOpenAI:
		if cfg.AI.OpenAIKey == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY is required for the openai provider"))
		}
	default:
		errs = append(errs, fmt.Errorf("PLANAI_PROVIDER %q is not one of gemini, openai", cfg.AI.Provider))
	}
	if cfg.AI.Timeout <= 0 {
		errs = append(errs, errors.New("PLANAI_GENERATION_TIMEOUT must be positive"))
	}
	if cfg.AI.MaxRetries < 0 {
		errs = append(errs, errors.New("PLANAI_MAX_RETRIES must not be negative"))
	}
	for _, p := range splitList(v.GetString("PLANAI_CORS_ORIGIN_PATTERNS")) {
		re, err := regexp.Compile(p)
		if err != nil {
			errs = append(errs, fmt.Errorf("PLANAI_CORS_ORIGIN_PATTERNS: %w", err))
			continue
		}
		cfg.CORS.Patterns = append(cfg.CORS.Patterns, re)
	}
	if err := errors.Join(errs...); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PLANAI_HTTP_ADDR", ":8000")
	v.SetDefault("PLANAI_LOG_LEVEL", "info")
	v.SetDefault("PLANAI_PROVIDER", ProviderGemini)
	v.SetDefault("PLANAI_TEMPERATURE", 0.4)
	v.SetDefault("PLANAI_GENERATION_TIMEOUT", 60*time.Second)
	v.SetDefault("PLANAI_MAX_RETRIES", 0)
	v.SetDefault("PLANAI_STRICT_PLAN", false)
	v.SetDefault("PLANAI_CORS_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173")
	v.SetDefault("PLANAI_CACHE_TTL", time.Hour)
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
