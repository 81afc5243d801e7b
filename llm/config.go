package llm

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
	ProviderMock      = "mock"
)

type Config struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string        // OpenAI-compatible endpoints only
	Timeout  time.Duration
	Retry    RetryConfig
}

type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Second,
		MaxWait:     10 * time.Second,
		Multiplier:  2.0,
	}
}

var defaultModels = map[string]string{
	ProviderOpenAI:    "gpt-4o-mini",
	ProviderAnthropic: "claude-haiku-4-5-20251001",
	ProviderGemini:    "gemini-2.0-flash",
	ProviderMock:      "mock",
}

// ConfigFromEnv reads LLM_PROVIDER, LLM_API_KEY, LLM_MODEL, LLM_BASE_URL,
// LLM_TIMEOUT_SECONDS and LLM_MAX_ATTEMPTS. The vendor key may also come
// from OPENAI_API_KEY, ANTHROPIC_API_KEY or GEMINI_API_KEY.
func ConfigFromEnv() Config {
	cfg := Config{
		Provider: os.Getenv("LLM_PROVIDER"),
		APIKey:   os.Getenv("LLM_API_KEY"),
		Model:    os.Getenv("LLM_MODEL"),
		BaseURL:  os.Getenv("LLM_BASE_URL"),
		Timeout:  60 * time.Second,
		Retry:    DefaultRetryConfig(),
	}
	if cfg.Provider == "" {
		cfg.Provider = ProviderMock
	}

	if cfg.APIKey == "" {
		switch cfg.Provider {
		case ProviderOpenAI:
			cfg.APIKey = os.Getenv("OPENAI_API_KEY")
		case ProviderAnthropic:
			cfg.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		case ProviderGemini:
			cfg.APIKey = os.Getenv("GEMINI_API_KEY")
		}
	}
	if cfg.Model == "" {
		cfg.Model = defaultModels[cfg.Provider]
	}

	if v, err := strconv.Atoi(os.Getenv("LLM_TIMEOUT_SECONDS")); err == nil && v > 0 {
		cfg.Timeout = time.Duration(v) * time.Second
	}
	if v, err := strconv.Atoi(os.Getenv("LLM_MAX_ATTEMPTS")); err == nil && v > 0 {
		cfg.Retry.MaxAttempts = v
	}
	return cfg
}

func (c Config) Validate() error {
	switch c.Provider {
	case ProviderOpenAI, ProviderAnthropic, ProviderGemini:
		if c.APIKey == "" {
			return fmt.Errorf("an API key is required for the %s provider", c.Provider)
		}
	case ProviderMock:
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
