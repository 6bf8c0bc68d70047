package description

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/cafefinder/internal/common"
	"github.com/ternarybob/cafefinder/internal/interfaces"
)

// NewBackend creates the chat backend selected by config.Provider
func NewBackend(ctx context.Context, config *common.DescriptionConfig, logger arbor.ILogger) (interfaces.ChatBackend, error) {
	logger.Info().
		Str("provider", string(config.Provider)).
		Str("model", config.ModelName()).
		Msg("Initializing description backend")

	if config.APIKey == "" {
		logger.Warn().
			Str("provider", string(config.Provider)).
			Msg("Description API key not configured, every place will use the fallback description")
		return &unconfiguredBackend{provider: string(config.Provider)}, nil
	}

	switch config.Provider {
	case common.DescriptionProviderOpenAI, "":
		return NewOpenAIBackend(config, logger), nil
	case common.DescriptionProviderClaude:
		return NewClaudeBackend(config, logger), nil
	case common.DescriptionProviderGemini:
		return NewGeminiBackend(ctx, config, logger)
	default:
		return nil, fmt.Errorf("unsupported description provider: %s", config.Provider)
	}
}

// NewFromConfig creates a description service with its backend and prompt
func NewFromConfig(ctx context.Context, config *common.DescriptionConfig, logger arbor.ILogger) (*Service, error) {
	prompt, err := LoadPrompt(config.PromptFile)
	if err != nil {
		return nil, err
	}

	backend, err := NewBackend(ctx, config, logger)
	if err != nil {
		return nil, err
	}

	return NewService(backend, prompt, config.DetailsPrefix, logger), nil
}

// unconfiguredBackend stands in when no API key is set
type unconfiguredBackend struct {
	provider string
}

func (b *unconfiguredBackend) Name() string {
	return b.provider
}

func (b *unconfiguredBackend) Chat(ctx context.Context, messages []interfaces.Message) (string, error) {
	return "", fmt.Errorf("%s API key is not configured", b.provider)
}
