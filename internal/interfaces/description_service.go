package interfaces

import (
	"context"

	"github.com/ternarybob/cafefinder/internal/models"
)

// Message represents a single message in a chat conversation
type Message struct {
	// Role identifies the message sender: "user", "assistant", or "system"
	Role string `json:"role"`

	// Content contains the text content of the message
	Content string `json:"content"`
}

// DescriptionService generates a short natural-language description of a place
type DescriptionService interface {
	// DescribePlace returns the model's text for the place verbatim.
	// A transport failure or a response without text is returned as an error.
	DescribePlace(ctx context.Context, details models.PlaceDetails, userPrompt string) (string, error)
}

// ChatBackend sends one chat completion request and returns the first completion text.
// Implementations exist per AI provider.
type ChatBackend interface {
	Chat(ctx context.Context, messages []Message) (string, error)
	Name() string
}

// FinderService assembles the finder page or the result card fragment for a query
type FinderService interface {
	Handle(ctx context.Context, query models.SearchQuery, isFragmentRequest bool) (string, error)
}
