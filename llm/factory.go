package llm

import (
	"context"
	"fmt"
)

// NewProvider builds the configured vendor provider wrapped as
// caller -> retry -> logging -> vendor.
func NewProvider(ctx context.Context, cfg Config, sink EventSink) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error
	switch cfg.Provider {
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg)
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg)
	case ProviderMock:
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithRetry(WithLogging(base, sink), cfg.Retry), nil
}
