package services

import (
	"context"

	"github.com/dhleesep9/mentor-engine/pkg/chat"
)

// LLMService defines the interface for interacting with the LLM API
type LLMService interface {
	// InitModel initializes the LLM model on startup
	InitModel(ctx context.Context, modelName string) error

	// GenerateResponse generates a chat response using the LLM
	GenerateResponse(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error)
}
