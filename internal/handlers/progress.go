package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dhleesep9/mentor-engine/internal/storage"
	"github.com/dhleesep9/mentor-engine/pkg/progress"
)

// ProgressHandler manages player session lifecycle.
type ProgressHandler struct {
	storage storage.Storage
	logger  *slog.Logger
}

func NewProgressHandler(storage storage.Storage, logger *slog.Logger) *ProgressHandler {
	return &ProgressHandler{
		storage: storage,
		logger:  logger,
	}
}

// CreateProgressRequest defines the request body for starting a session.
type CreateProgressRequest struct {
	Username string `json:"username"`
	Career   string `json:"career,omitempty"`
}

// ServeHTTP handles HTTP requests for progress operations
// Routes:
// POST /v1/progress        - Create a new player session
// GET /v1/progress/{id}    - Read a session by ID
// DELETE /v1/progress/{id} - Delete a session by ID
func (h *ProgressHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	path := strings.TrimPrefix(r.URL.Path, "/v1/progress")
	var progressID uuid.UUID
	var err error

	if path != "" && path != "/" {
		idStr := strings.Trim(path, "/")
		progressID, err = uuid.Parse(idStr)
		if err != nil {
			h.logger.Warn("Invalid progress ID", "id", idStr, "error", err)
			w.WriteHeader(http.StatusBadRequest)
			h.writeError(w, "Invalid progress ID format")
			return
		}
	}

	switch r.Method {
	case http.MethodPost:
		h.handleCreate(w, r)

	case http.MethodGet:
		if progressID == uuid.Nil {
			h.logger.Warn("GET request without progress ID")
			w.WriteHeader(http.StatusBadRequest)
			h.writeError(w, "Progress ID is required for GET requests")
			return
		}
		h.handleRead(w, r, progressID)

	case http.MethodDelete:
		if progressID == uuid.Nil {
			h.logger.Warn("DELETE request without progress ID")
			w.WriteHeader(http.StatusBadRequest)
			h.writeError(w, "Progress ID is required for DELETE requests")
			return
		}
		h.handleDelete(w, r, progressID)

	default:
		h.logger.Warn("Method not allowed for progress endpoint", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		h.writeError(w, "Method not allowed. Supported methods: POST, GET, DELETE")
	}
}

func (h *ProgressHandler) writeError(w http.ResponseWriter, message string) {
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: message}); err != nil {
		h.logger.Error("Failed to encode error response", "error", err)
	}
}

func (h *ProgressHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug("Creating new progress")

	var req CreateProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		h.writeError(w, "Invalid request body. Expected JSON with 'username' field.")
		return
	}

	if req.Username == "" {
		w.WriteHeader(http.StatusBadRequest)
		h.writeError(w, "Username cannot be empty.")
		return
	}

	p := progress.New(req.Username)
	p.Career = req.Career

	if err := h.storage.SaveProgress(r.Context(), p.ID, p); err != nil {
		h.logger.Error("Failed to save progress", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		h.writeError(w, "Failed to create progress")
		return
	}

	h.logger.Info("Progress created", "progress_id", p.ID, "username", p.Username)
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(p); err != nil {
		h.logger.Error("Failed to encode progress response", "error", err)
	}
}

func (h *ProgressHandler) handleRead(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	p, err := h.storage.LoadProgress(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to load progress", "progress_id", id, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		h.writeError(w, "Failed to load progress")
		return
	}
	if p == nil {
		w.WriteHeader(http.StatusNotFound)
		h.writeError(w, "Progress not found")
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(p); err != nil {
		h.logger.Error("Failed to encode progress response", "error", err)
	}
}

func (h *ProgressHandler) handleDelete(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if err := h.storage.DeleteProgress(r.Context(), id); err != nil {
		h.logger.Error("Failed to delete progress", "progress_id", id, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		h.writeError(w, "Failed to delete progress")
		return
	}

	h.logger.Info("Progress deleted", "progress_id", id)
	w.WriteHeader(http.StatusNoContent)
}
