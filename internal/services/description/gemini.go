package description

import (
	"context"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/cafefinder/internal/common"
	"github.com/ternarybob/cafefinder/internal/interfaces"
	"google.golang.org/genai"
)

// GeminiBackend generates descriptions with the Google GenAI API
type GeminiBackend struct {
	config *common.DescriptionConfig
	client *genai.Client
	logger arbor.ILogger
}

// NewGeminiBackend creates a Gemini chat backend. BaseURL overrides the API root when set.
func NewGeminiBackend(ctx context.Context, config *common.DescriptionConfig, logger arbor.ILogger) (*GeminiBackend, error) {
	clientConfig := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: config.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	logger.Debug().
		Str("model", config.ModelName()).
		Msg("Gemini description backend initialized")

	return &GeminiBackend{
		config: config,
		client: client,
		logger: logger,
	}, nil
}

// Name returns the provider name
func (b *GeminiBackend) Name() string {
	return string(common.DescriptionProviderGemini)
}

// Chat sends the conversation as a single GenerateContent request
func (b *GeminiBackend) Chat(ctx context.Context, messages []interfaces.Message) (string, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, b.config.Timeout())
	defer cancel()

	systemText, contents := convertMessagesToGemini(messages)

	config := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(b.config.MaxTokens),
	}
	if b.config.Temperature > 0 {
		config.Temperature = genai.Ptr(b.config.Temperature)
	}
	if systemText != "" {
		config.SystemInstruction = genai.NewContentFromText(systemText, genai.RoleUser)
	}

	resp, err := b.client.Models.GenerateContent(timeoutCtx, b.config.ModelName(), contents, config)
	if err != nil {
		return "", fmt.Errorf("Gemini API call failed: %w", err)
	}

	var response strings.Builder
	if resp != nil {
		for _, candidate := range resp.Candidates {
			if candidate.Content == nil {
				continue
			}
			for _, part := range candidate.Content.Parts {
				response.WriteString(part.Text)
			}
			if response.Len() > 0 {
				break
			}
		}
	}
	return response.String(), nil
}

// convertMessagesToGemini maps the conversation onto GenAI contents
func convertMessagesToGemini(messages []interfaces.Message) (string, []*genai.Content) {
	systemText, turns := splitSystem(messages)

	contents := make([]*genai.Content, 0, len(turns))
	for _, msg := range turns {
		var geminiRole string
		switch msg.Role {
		case "assistant":
			geminiRole = genai.RoleModel
		default:
			geminiRole = genai.RoleUser
		}
		contents = append(contents, &genai.Content{
			Role:  geminiRole,
			Parts: []*genai.Part{genai.NewPartFromText(msg.Content)},
		})
	}
	return systemText, contents
}
