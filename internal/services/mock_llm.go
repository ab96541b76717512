package services

import (
	"context"
	"sync"

	"github.com/dhleesep9/mentor-engine/pkg/chat"
)

// MockLLM is a mock implementation of LLMService for testing
type MockLLM struct {
	InitModelFunc        func(ctx context.Context, modelName string) error
	GenerateResponseFunc func(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error)

	// Track calls for testing
	InitModelCalls        []string
	GenerateResponseCalls [][]chat.ChatMessage

	generateError error

	mu sync.Mutex // protects all fields above
}

var _ LLMService = (*MockLLM)(nil)

// NewMockLLM creates a new mock LLM service
func NewMockLLM() *MockLLM {
	return &MockLLM{
		InitModelCalls:        make([]string, 0),
		GenerateResponseCalls: make([][]chat.ChatMessage, 0),
	}
}

// SetGenerateResponseError makes GenerateResponse fail with err.
func (m *MockLLM) SetGenerateResponseError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.generateError = err
}

// InitModel mocks model initialization
func (m *MockLLM) InitModel(ctx context.Context, modelName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.InitModelCalls = append(m.InitModelCalls, modelName)
	if m.InitModelFunc != nil {
		return m.InitModelFunc(ctx, modelName)
	}
	return nil
}

// GenerateResponse mocks response generation. The default reply is a
// canned mentor response; sentiment-scoring prompts get a neutral "1".
func (m *MockLLM) GenerateResponse(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GenerateResponseCalls = append(m.GenerateResponseCalls, messages)

	if m.generateError != nil {
		return nil, m.generateError
	}
	if m.GenerateResponseFunc != nil {
		return m.GenerateResponseFunc(ctx, messages)
	}

	if isSentimentPrompt(messages) {
		return &chat.ChatResponse{Message: "1"}, nil
	}
	return &chat.ChatResponse{Message: "오늘도 계획대로 공부해보자."}, nil
}

// isSentimentPrompt detects the affection-scoring system prompt.
func isSentimentPrompt(messages []chat.ChatMessage) bool {
	return len(messages) > 0 &&
		messages[0].Role == chat.ChatRoleSystem &&
		len(messages[0].Content) >= len(SentimentPromptPrefix) &&
		messages[0].Content[:len(SentimentPromptPrefix)] == SentimentPromptPrefix
}
