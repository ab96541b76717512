package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dhleesep9/mentor-engine/pkg/chat"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

func TestScoreAffection(t *testing.T) {
	tests := []struct {
		name     string
		reply    string
		expected int
	}{
		{"plain number", "2", 2},
		{"negative number", "-1", -1},
		{"number with trailing text", "2 (긍정적)", 2},
		{"number embedded in sentence", "판단 결과는 -2 입니다", -2},
		{"no number at all", "잘 모르겠어요", 0},
		{"clamped above", "10", MaxAffectionDelta},
		{"clamped below", "-10", MinAffectionDelta},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockLLM()
			mock.GenerateResponseFunc = func(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error) {
				return &chat.ChatResponse{Message: tt.reply}, nil
			}

			got := ScoreAffection(context.Background(), mock, "테스트 메시지", testLogger())
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestScoreAffection_LLMErrorIsNeutral(t *testing.T) {
	mock := NewMockLLM()
	mock.SetGenerateResponseError(errors.New("llm unavailable"))

	assert.Equal(t, 0, ScoreAffection(context.Background(), mock, "안녕", testLogger()))
}

func TestMockLLM_SentimentPromptGetsNumericReply(t *testing.T) {
	mock := NewMockLLM()

	resp, err := mock.GenerateResponse(context.Background(), []chat.ChatMessage{
		{Role: chat.ChatRoleSystem, Content: SentimentPromptPrefix + " ..."},
		{Role: chat.ChatRoleUser, Content: "점수 매겨줘"},
	})
	assert.NoError(t, err)
	assert.Equal(t, "1", resp.Message)

	// Ordinary prompts get the canned mentor reply.
	resp, err = mock.GenerateResponse(context.Background(), []chat.ChatMessage{
		{Role: chat.ChatRoleUser, Content: "안녕하세요"},
	})
	assert.NoError(t, err)
	assert.NotEqual(t, "1", resp.Message)
}
