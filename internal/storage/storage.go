package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/dhleesep9/mentor-engine/pkg/progress"
)

// Storage defines the interface for player progress persistence
type Storage interface {
	// Ping tests the storage connection
	Ping(ctx context.Context) error

	// Close closes the storage connection
	Close() error

	// SaveProgress saves a player session keyed by its UUID
	SaveProgress(ctx context.Context, id uuid.UUID, p *progress.Progress) error

	// LoadProgress retrieves a player session by UUID.
	// Returns nil if the session doesn't exist.
	LoadProgress(ctx context.Context, id uuid.UUID) (*progress.Progress, error)

	// DeleteProgress removes a player session by UUID
	DeleteProgress(ctx context.Context, id uuid.UUID) error
}
