package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string            `toml:"environment"` // "development" or "production"
	Server      ServerConfig      `toml:"server"`
	Logging     LoggingConfig     `toml:"logging"`
	Places      PlacesConfig      `toml:"places"`
	Description DescriptionConfig `toml:"description"`
}

type ServerConfig struct {
	Port int    `toml:"port" validate:"min=1,max=65535"`
	Host string `toml:"host"`
}

type LoggingConfig struct {
	Level      string   `toml:"level" validate:"oneof=debug info warn error"`
	Output     []string `toml:"output" validate:"dive,oneof=stdout console file"` // "stdout", "file"
	TimeFormat string   `toml:"time_format"`
}

// PlacesConfig contains Google Places API configuration
type PlacesConfig struct {
	APIKey         string `toml:"api_key"`                             // Google Places API key
	BaseURL        string `toml:"base_url" validate:"required,url"`     // Places web service root
	RequestTimeout string `toml:"request_timeout" validate:"required"` // HTTP request timeout, e.g. "15s"
	PhotoMaxWidth  int    `toml:"photo_max_width" validate:"min=1,max=1600"`
}

// DescriptionProvider represents the AI backend used for place descriptions
type DescriptionProvider string

const (
	// DescriptionProviderOpenAI uses an OpenAI-compatible chat completions endpoint
	DescriptionProviderOpenAI DescriptionProvider = "openai"
	// DescriptionProviderClaude uses Anthropic Claude API
	DescriptionProviderClaude DescriptionProvider = "claude"
	// DescriptionProviderGemini uses Google Gemini API
	DescriptionProviderGemini DescriptionProvider = "gemini"
)

// DescriptionConfig contains configuration for the place description generator
type DescriptionConfig struct {
	Provider       DescriptionProvider `toml:"provider" validate:"oneof=openai claude gemini"`
	APIKey         string              `toml:"api_key"`
	Model          string              `toml:"model" validate:"required"`
	BaseURL        string              `toml:"base_url" validate:"omitempty,url"` // Empty = provider default
	PromptFile     string              `toml:"prompt_file"`                       // Empty = built-in prompt
	DetailsPrefix  string              `toml:"details_prefix"`                    // Precedes the serialized place details
	RequestTimeout string              `toml:"request_timeout" validate:"required"`
	MaxTokens      int                 `toml:"max_tokens" validate:"min=1"`
	Temperature    float32             `toml:"temperature" validate:"gte=0,lte=2"`
}

// Default model per provider
const (
	DefaultOpenAIModel = "gpt-4o"
	DefaultClaudeModel = "claude-sonnet-4-20250514"
	DefaultGeminiModel = "gemini-2.0-flash"
)

// NewDefaultConfig creates a configuration with default values
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Output:     []string{"stdout"},
			TimeFormat: "15:04:05.000",
		},
		Places: PlacesConfig{
			APIKey:         "", // GOOGLE_API_KEY
			BaseURL:        "https://maps.googleapis.com/maps/api/place",
			RequestTimeout: "15s",
			PhotoMaxWidth:  400,
		},
		Description: DescriptionConfig{
			Provider:       DescriptionProviderOpenAI,
			APIKey:         "", // OPENAI_API_KEY
			Model:          DefaultOpenAIModel,
			BaseURL:        "", // Provider default
			PromptFile:     "",
			DetailsPrefix:  "Information about the place (JSON format): ",
			RequestTimeout: "60s",
			MaxTokens:      1024,
			Temperature:    0,
		},
	}
}

// LoadFromFiles loads configuration from multiple files with priority: default -> file1 -> file2 -> ... -> env
// Later files override earlier files. CLI flags are applied separately by ApplyFlagOverrides.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		// Unmarshal into config (merges with existing values, later values override)
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("CAFEFINDER_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	// Server configuration
	if port := os.Getenv("CAFEFINDER_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("CAFEFINDER_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	// Logging configuration
	if level := os.Getenv("CAFEFINDER_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("CAFEFINDER_LOG_OUTPUT"); output != "" {
		outputs := []string{}
		for _, o := range strings.Split(output, ",") {
			if o = strings.TrimSpace(o); o != "" {
				outputs = append(outputs, o)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}

	// Places configuration (CAFEFINDER_ prefix takes priority)
	if apiKey := firstEnv("CAFEFINDER_PLACES_API_KEY", "GOOGLE_API_KEY"); apiKey != "" {
		config.Places.APIKey = apiKey
	}
	if baseURL := os.Getenv("CAFEFINDER_PLACES_BASE_URL"); baseURL != "" {
		config.Places.BaseURL = baseURL
	}

	// Description configuration
	if provider := os.Getenv("CAFEFINDER_DESCRIPTION_PROVIDER"); provider != "" {
		config.Description.Provider = DescriptionProvider(strings.ToLower(provider))
	}
	if apiKey := os.Getenv("CAFEFINDER_DESCRIPTION_API_KEY"); apiKey != "" {
		config.Description.APIKey = apiKey
	} else if apiKey := os.Getenv(providerKeyEnv(config.Description.Provider)); apiKey != "" {
		config.Description.APIKey = apiKey
	}
	if model := os.Getenv("CAFEFINDER_DESCRIPTION_MODEL"); model != "" {
		config.Description.Model = model
	}
	if baseURL := os.Getenv("CAFEFINDER_DESCRIPTION_BASE_URL"); baseURL != "" {
		config.Description.BaseURL = baseURL
	}
	if promptFile := os.Getenv("CAFEFINDER_PROMPT_FILE"); promptFile != "" {
		config.Description.PromptFile = promptFile
	}
}

// providerKeyEnv returns the vendor's conventional API key variable
func providerKeyEnv(provider DescriptionProvider) string {
	switch provider {
	case DescriptionProviderClaude:
		return "ANTHROPIC_API_KEY"
	case DescriptionProviderGemini:
		return "GEMINI_API_KEY"
	default:
		return "OPENAI_API_KEY"
	}
}

func firstEnv(names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// ApplyFlagOverrides applies command-line flag overrides to config
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Validate checks the configuration using its validate struct tags.
// Missing API keys are not validation errors: the search page still renders without them.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	for name, value := range map[string]string{
		"places.request_timeout":      c.Places.RequestTimeout,
		"description.request_timeout": c.Description.RequestTimeout,
	} {
		if d, err := time.ParseDuration(value); err != nil || d <= 0 {
			return fmt.Errorf("invalid configuration: %s must be a positive duration, got %q", name, value)
		}
	}
	return nil
}

// Timeout returns the parsed request timeout, falling back to 15s
func (c PlacesConfig) Timeout() time.Duration {
	return parseTimeout(c.RequestTimeout, 15*time.Second)
}

// Timeout returns the parsed request timeout, falling back to 60s
func (c DescriptionConfig) Timeout() time.Duration {
	return parseTimeout(c.RequestTimeout, 60*time.Second)
}

func parseTimeout(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// ModelName returns the model to request. The built-in OpenAI default is swapped for the
// selected provider's default so switching provider alone yields a working setup.
func (c DescriptionConfig) ModelName() string {
	if c.Model != "" && c.Model != DefaultOpenAIModel {
		return c.Model
	}
	switch c.Provider {
	case DescriptionProviderClaude:
		return DefaultClaudeModel
	case DescriptionProviderGemini:
		return DefaultGeminiModel
	default:
		return DefaultOpenAIModel
	}
}

// MissingKeys lists the API keys that are not configured
func (c *Config) MissingKeys() []string {
	missing := []string{}
	if c.Places.APIKey == "" {
		missing = append(missing, "places.api_key")
	}
	if c.Description.APIKey == "" {
		missing = append(missing, "description.api_key")
	}
	return missing
}

// IsProduction reports whether the configured environment is production
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Environment)
	return env == "production" || env == "prod"
}
