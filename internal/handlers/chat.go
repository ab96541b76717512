package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dhleesep9/mentor-engine/internal/game"
	"github.com/dhleesep9/mentor-engine/pkg/chat"
)

// chatTimeout bounds one full turn, including the LLM round trips.
const chatTimeout = 60 * time.Second

// ChatHandler handles chat turns against a player session.
type ChatHandler struct {
	processor *game.Processor
	logger    *slog.Logger
}

func NewChatHandler(processor *game.Processor, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		processor: processor,
		logger:    logger,
	}
}

// ServeHTTP handles POST /v1/chat.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		h.logger.Warn("Method not allowed for chat endpoint",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr)

		w.WriteHeader(http.StatusMethodNotAllowed)
		response := chat.ChatResponse{
			Error: "Method not allowed. Only POST is supported.",
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			h.logger.Error("Error encoding chat error response", "error", err)
		}
		return
	}

	var request chat.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.logger.Warn("Invalid request body", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		response := chat.ChatResponse{
			Error: "Invalid request body. Expected JSON with 'progress_id' and 'message' fields.",
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			h.logger.Error("Error encoding error response", "error", err)
		}
		return
	}

	if err := request.Validate(); err != nil {
		h.logger.Warn("Invalid chat request", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		response := chat.ChatResponse{
			Error: err.Error(),
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			h.logger.Error("Error encoding error response", "error", err)
		}
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), chatTimeout)
	defer cancel()

	response, err := h.processor.ProcessTurn(ctx, request)
	if err != nil {
		if errors.Is(err, game.ErrProgressNotFound) {
			h.logger.Warn("Chat for unknown progress", "progress_id", request.ProgressID)
			w.WriteHeader(http.StatusNotFound)
			errorResponse := chat.ChatResponse{
				Error: "Progress not found. Create a session first.",
			}
			if err := json.NewEncoder(w).Encode(errorResponse); err != nil {
				h.logger.Error("Error encoding error response", "error", err)
			}
			return
		}

		h.logger.Error("Error processing chat turn", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		errorResponse := chat.ChatResponse{
			Error: "Failed to process the message. Please try again.",
		}
		if err := json.NewEncoder(w).Encode(errorResponse); err != nil {
			h.logger.Error("Error encoding error response", "error", err)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("Error encoding chat response", "error", err)
	}
}
