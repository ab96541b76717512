package chat

import (
	"fmt"

	"github.com/google/uuid"
)

// ChatRequest represents a chat message sent by the player
// to the mentor-engine api.
type ChatRequest struct {
	ProgressID uuid.UUID `json:"progress_id"` // Unique ID for the player session
	Message    string    `json:"message"`
}

// ChatResponse represents a chat turn result returned by the mentor-engine api.
// Narration is set when the turn caused a state transition or a scheduled
// event (week advance, exam report).
type ChatResponse struct {
	ProgressID uuid.UUID      `json:"progress_id,omitempty"`
	Message    string         `json:"message,omitempty"`
	Narration  string         `json:"narration,omitempty"`
	State      string         `json:"state,omitempty"`
	Affection  int            `json:"affection,omitempty"`
	Stats      map[string]int `json:"stats,omitempty"` // stamina, mental, confidence
	Error      string         `json:"error,omitempty"`
}

const (
	ChatRoleUser   = "user"      // Player
	ChatRoleAgent  = "assistant" // Mentor character
	ChatRoleSystem = "system"    // Narrator or system
)

// ChatMessage represents a single chat message in the conversation.
// The shape follows the Ollama chat API and is used to structure
// messages sent to the LLM.
type ChatMessage struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

func (cr *ChatRequest) Validate() error {
	if cr.Message == "" {
		return fmt.Errorf("message cannot be empty")
	}
	if cr.ProgressID == uuid.Nil {
		return fmt.Errorf("progress_id is required")
	}
	return nil
}
