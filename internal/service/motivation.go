package service

import (
	"context"
	"fmt"

	"github.com/pageza/fitbuddy/backend/internal/types"
)

const motivationMaxTokens = 50

// MotivationService produces short motivational messages
type MotivationService struct {
	llm ChatCompleter
}

// NewMotivationService creates a new MotivationService instance
func NewMotivationService(llm ChatCompleter) *MotivationService {
	return &MotivationService{llm: llm}
}

// MotivationPrompt embeds goal verbatim in the motivation prompt
func MotivationPrompt(goal string) string {
	return fmt.Sprintf("Give a short motivational message for someone trying to %s.", goal)
}

// Motivate asks the model for a motivational message about goal
func (s *MotivationService) Motivate(ctx context.Context, goal string) (*types.MotivationResponse, error) {
	content, err := s.llm.Complete(ctx, []Message{
		{Role: "user", Content: MotivationPrompt(goal)},
	}, motivationMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("failed to generate motivation: %w", err)
	}

	return &types.MotivationResponse{Message: content}, nil
}
