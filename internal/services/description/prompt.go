package description

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
)

//go:embed prompts/default_prompt.txt
var defaultPrompt string

// DefaultPrompt returns the built-in system instruction
func DefaultPrompt() string {
	return strings.TrimSpace(defaultPrompt)
}

// LoadPrompt reads the system instruction from path, or returns the built-in one when path is empty
func LoadPrompt(path string) (string, error) {
	if path == "" {
		return DefaultPrompt(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read prompt file %s: %w", path, err)
	}

	prompt := strings.TrimSpace(string(data))
	if prompt == "" {
		return "", fmt.Errorf("prompt file %s is empty", path)
	}
	return prompt, nil
}
