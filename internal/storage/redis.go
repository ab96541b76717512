package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dhleesep9/mentor-engine/pkg/progress"
)

// progressTTL keeps finished or abandoned sessions from piling up.
const progressTTL = 30 * 24 * time.Hour

// RedisStorage implements the Storage interface using Redis
type RedisStorage struct {
	client *redis.Client
	logger *slog.Logger
}

// Ensure RedisStorage implements Storage interface
var _ Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a new Redis storage instance from a redis URL
// (redis://host:port).
func NewRedisStorage(redisURL string, logger *slog.Logger) (*RedisStorage, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	return &RedisStorage{
		client: redis.NewClient(opt),
		logger: logger,
	}, nil
}

func (r *RedisStorage) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// WaitForConnection waits for Redis to become available (used during startup)
func (r *RedisStorage) WaitForConnection(ctx context.Context) error {
	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}

func progressKey(id uuid.UUID) string {
	return "progress:" + id.String()
}

func (r *RedisStorage) SaveProgress(ctx context.Context, id uuid.UUID, p *progress.Progress) error {
	p.UpdatedAt = time.Now()

	data, err := json.Marshal(p)
	if err != nil {
		r.logger.Error("Failed to marshal progress", "uuid", id, "error", err)
		return fmt.Errorf("failed to marshal progress: %w", err)
	}

	if err := r.client.Set(ctx, progressKey(id), string(data), progressTTL).Err(); err != nil {
		r.logger.Error("Failed to save progress", "uuid", id, "error", err)
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}

func (r *RedisStorage) LoadProgress(ctx context.Context, id uuid.UUID) (*progress.Progress, error) {
	cmd := r.client.Get(ctx, progressKey(id))
	if err := cmd.Err(); err != nil {
		if err == redis.Nil {
			r.logger.Warn("Progress not found", "uuid", id)
			return nil, nil // Return nil for not found
		}
		r.logger.Error("Failed to load progress", "uuid", id, "error", err)
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}

	var p progress.Progress
	if err := json.Unmarshal([]byte(cmd.Val()), &p); err != nil {
		r.logger.Error("Failed to unmarshal progress", "uuid", id, "error", err)
		return nil, fmt.Errorf("failed to unmarshal progress: %w", err)
	}
	return &p, nil
}

func (r *RedisStorage) DeleteProgress(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, progressKey(id)).Err(); err != nil {
		r.logger.Error("Failed to delete progress", "uuid", id, "error", err)
		return fmt.Errorf("failed to delete progress: %w", err)
	}
	return nil
}
