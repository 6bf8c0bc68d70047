package description

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/cafefinder/internal/common"
	"github.com/ternarybob/cafefinder/internal/interfaces"
)

// OpenAIBackend talks to an OpenAI-compatible chat completions endpoint
type OpenAIBackend struct {
	config     *common.DescriptionConfig
	baseURL    string
	httpClient *http.Client
	logger     arbor.ILogger
}

type chatCompletionRequest struct {
	Model       string               `json:"model"`
	Messages    []interfaces.Message `json:"messages"`
	MaxTokens   int                  `json:"max_tokens,omitempty"`
	Temperature *float32             `json:"temperature,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// NewOpenAIBackend creates the default chat backend
func NewOpenAIBackend(config *common.DescriptionConfig, logger arbor.ILogger) *OpenAIBackend {
	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	return &OpenAIBackend{
		config:  config,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: config.Timeout(),
		},
		logger: logger,
	}
}

// Name returns the provider name
func (b *OpenAIBackend) Name() string {
	return string(common.DescriptionProviderOpenAI)
}

// Chat sends one completion request and returns choices[0].message.content
func (b *OpenAIBackend) Chat(ctx context.Context, messages []interfaces.Message) (string, error) {
	request := chatCompletionRequest{
		Model:     b.config.ModelName(),
		Messages:  messages,
		MaxTokens: b.config.MaxTokens,
	}
	if b.config.Temperature > 0 {
		temperature := b.config.Temperature
		request.Temperature = &temperature
	}

	body, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.config.APIKey)

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	responseData, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, truncate(string(responseData), 512))
	}

	var apiResponse chatCompletionResponse
	if err := json.Unmarshal(responseData, &apiResponse); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if apiResponse.Error != nil {
		return "", fmt.Errorf("API error: %s", apiResponse.Error.Message)
	}
	if len(apiResponse.Choices) == 0 {
		return "", fmt.Errorf("response has no choices")
	}

	return apiResponse.Choices[0].Message.Content, nil
}

func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	return text[:max] + "..."
}
