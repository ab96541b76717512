package storage

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhleesep9/mentor-engine/pkg/progress"
)

func setupTestRedis(t *testing.T) (*RedisStorage, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	store, err := NewRedisStorage("redis://"+mr.Addr(), logger)
	if err != nil {
		mr.Close()
		t.Fatalf("Failed to create redis storage: %v", err)
	}
	return store, mr
}

func TestRedisStorage_ProgressRoundTrip(t *testing.T) {
	store, mr := setupTestRedis(t)
	defer mr.Close()
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	require.NoError(t, store.Ping(ctx))

	p := progress.New("민수")
	p.State = "daily_routine"
	p.Affection = 12
	p.SelectedSubjects = []string{"사회문화", "경제"}
	p.Schedule = map[string]int{"수학": 4, "운동": 2}

	require.NoError(t, store.SaveProgress(ctx, p.ID, p))
	assert.False(t, p.UpdatedAt.IsZero(), "save must stamp UpdatedAt")

	loaded, err := store.LoadProgress(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, p.ID, loaded.ID)
	assert.Equal(t, "daily_routine", loaded.State)
	assert.Equal(t, 12, loaded.Affection)
	assert.Equal(t, p.SelectedSubjects, loaded.SelectedSubjects)
	assert.Equal(t, p.Schedule, loaded.Schedule)
}

func TestRedisStorage_LoadMissingReturnsNil(t *testing.T) {
	store, mr := setupTestRedis(t)
	defer mr.Close()
	defer func() { _ = store.Close() }()

	loaded, err := store.LoadProgress(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStorage_DeleteProgress(t *testing.T) {
	store, mr := setupTestRedis(t)
	defer mr.Close()
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	p := progress.New("민수")
	require.NoError(t, store.SaveProgress(ctx, p.ID, p))
	require.NoError(t, store.DeleteProgress(ctx, p.ID))

	loaded, err := store.LoadProgress(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStorage_BadURL(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	_, err := NewRedisStorage("not a url", logger)
	assert.Error(t, err)
}
