package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dhleesep9/mentor-engine/pkg/statemachine"
)

// StateSummary is the public view of one loaded state.
type StateSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Transitions int    `json:"transitions"`
}

// StatesHandler lists the loaded game states.
type StatesHandler struct {
	machine *statemachine.Machine
	logger  *slog.Logger
}

func NewStatesHandler(machine *statemachine.Machine, logger *slog.Logger) *StatesHandler {
	return &StatesHandler{
		machine: machine,
		logger:  logger,
	}
}

// ServeHTTP handles GET /v1/states.
func (h *StatesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		h.logger.Warn("Method not allowed for states endpoint", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		if err := json.NewEncoder(w).Encode(ErrorResponse{
			Error: "Method not allowed. Only GET is supported.",
		}); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
		return
	}

	ids := h.machine.StateIDs()
	summaries := make([]StateSummary, 0, len(ids))
	for _, id := range ids {
		s, ok := h.machine.State(id)
		if !ok {
			continue
		}
		summaries = append(summaries, StateSummary{
			ID:          s.ID,
			Name:        s.Name,
			Description: s.Description,
			Transitions: len(s.Transitions),
		})
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(summaries); err != nil {
		h.logger.Error("Failed to encode states response", "error", err)
	}
}
