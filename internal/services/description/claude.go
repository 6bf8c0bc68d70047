package description

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/cafefinder/internal/common"
	"github.com/ternarybob/cafefinder/internal/interfaces"
)

// ClaudeBackend generates descriptions with the Anthropic Messages API
type ClaudeBackend struct {
	config *common.DescriptionConfig
	client anthropic.Client
	logger arbor.ILogger
}

// NewClaudeBackend creates a Claude chat backend. BaseURL overrides the API root when set.
func NewClaudeBackend(config *common.DescriptionConfig, logger arbor.ILogger) *ClaudeBackend {
	opts := []option.RequestOption{
		option.WithAPIKey(config.APIKey),
		option.WithRequestTimeout(config.Timeout()),
		option.WithMaxRetries(0),
	}
	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}

	logger.Debug().
		Str("model", config.ModelName()).
		Int("max_tokens", config.MaxTokens).
		Msg("Claude description backend initialized")

	return &ClaudeBackend{
		config: config,
		client: anthropic.NewClient(opts...),
		logger: logger,
	}
}

// Name returns the provider name
func (b *ClaudeBackend) Name() string {
	return string(common.DescriptionProviderClaude)
}

// Chat sends the conversation as a single Messages request
func (b *ClaudeBackend) Chat(ctx context.Context, messages []interfaces.Message) (string, error) {
	systemText, claudeMessages := convertMessagesToClaude(messages)

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(b.config.ModelName()),
		MaxTokens: int64(b.config.MaxTokens),
		Messages:  claudeMessages,
	}
	if b.config.Temperature > 0 {
		params.Temperature = anthropic.Float(float64(b.config.Temperature))
	}
	if systemText != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: systemText},
		}
	}

	resp, err := b.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("Claude API call failed: %w", err)
	}

	var response strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			response.WriteString(block.Text)
		}
	}
	return response.String(), nil
}

// convertMessagesToClaude maps the conversation onto the Messages API shape
func convertMessagesToClaude(messages []interfaces.Message) (string, []anthropic.MessageParam) {
	systemText, turns := splitSystem(messages)

	claudeMessages := make([]anthropic.MessageParam, 0, len(turns))
	for _, msg := range turns {
		switch msg.Role {
		case "assistant":
			claudeMessages = append(claudeMessages, anthropic.NewAssistantMessage(
				anthropic.NewTextBlock(msg.Content),
			))
		default:
			claudeMessages = append(claudeMessages, anthropic.NewUserMessage(
				anthropic.NewTextBlock(msg.Content),
			))
		}
	}
	return systemText, claudeMessages
}
