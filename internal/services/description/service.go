package description

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/cafefinder/internal/interfaces"
	"github.com/ternarybob/cafefinder/internal/models"
)

// FallbackDescription is shown on a card whenever no description could be generated
const FallbackDescription = "Description not available."

// ErrNoDescription is wrapped by every failure to produce a description
var ErrNoDescription = errors.New("no description generated")

const (
	roleSystem = "system"
	roleUser   = "user"
)

// Service implements the DescriptionService interface on top of a chat backend
type Service struct {
	backend       interfaces.ChatBackend
	systemPrompt  string
	detailsPrefix string
	logger        arbor.ILogger
}

// NewService creates a description service. The system prompt is fixed for the lifetime of the service.
func NewService(backend interfaces.ChatBackend, systemPrompt, detailsPrefix string, logger arbor.ILogger) *Service {
	return &Service{
		backend:       backend,
		systemPrompt:  systemPrompt,
		detailsPrefix: detailsPrefix,
		logger:        logger,
	}
}

// BuildMessages assembles the conversation sent for one place:
// the fixed instruction, the serialized details and, when present, the user prompt.
func (s *Service) BuildMessages(details models.PlaceDetails, userPrompt string) ([]interfaces.Message, error) {
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize place details: %w", err)
	}

	messages := []interfaces.Message{
		{Role: roleSystem, Content: s.systemPrompt},
		{Role: roleSystem, Content: s.detailsPrefix + string(detailsJSON)},
	}
	if userPrompt != "" {
		messages = append(messages, interfaces.Message{Role: roleUser, Content: userPrompt})
	}
	return messages, nil
}

// DescribePlace returns the first completion text verbatim
func (s *Service) DescribePlace(ctx context.Context, details models.PlaceDetails, userPrompt string) (string, error) {
	messages, err := s.BuildMessages(details, userPrompt)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoDescription, err)
	}

	startTime := time.Now()
	text, err := s.backend.Chat(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("%w: %s backend: %w", ErrNoDescription, s.backend.Name(), err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: %s backend returned empty content", ErrNoDescription, s.backend.Name())
	}

	s.logger.Debug().
		Str("backend", s.backend.Name()).
		Str("place", details.Name).
		Int("response_length", len(text)).
		Dur("duration", time.Since(startTime)).
		Msg("Place description generated")

	return text, nil
}

// splitSystem separates system messages from the conversation turns.
// System contents are joined with blank lines; a conversation without a user turn
// gets defaultUserTurn so providers that require one accept the request.
func splitSystem(messages []interfaces.Message) (string, []interfaces.Message) {
	var system []string
	turns := make([]interfaces.Message, 0, len(messages))
	for _, msg := range messages {
		if msg.Role == roleSystem {
			system = append(system, msg.Content)
			continue
		}
		turns = append(turns, msg)
	}
	if len(turns) == 0 {
		turns = append(turns, interfaces.Message{Role: roleUser, Content: defaultUserTurn})
	}
	return strings.Join(system, "\n\n"), turns
}

// defaultUserTurn is sent to providers that reject a conversation without a user message
const defaultUserTurn = "Describe this place."
