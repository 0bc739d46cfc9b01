package score

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/geodraw/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefix for Redis
	snapshotKeyPrefix = "score:"
)

// Errors returned by the repository
var (
	// ErrSnapshotNotFound is returned when no snapshot exists for the game
	ErrSnapshotNotFound = errors.New("score snapshot not found")

	// ErrCorruptSnapshot is returned when a stored snapshot fails to parse
	ErrCorruptSnapshot = errors.New("stored score snapshot is corrupt")
)

// Config holds configuration for the Redis score repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed score repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// UpsertSnapshot writes a snapshot keyed by game ID
func (r *redisRepository) UpsertSnapshot(ctx context.Context, input *UpsertSnapshotInput) error {
	if input == nil || input.Snapshot == nil {
		return errors.New("input and snapshot cannot be nil")
	}

	if input.Snapshot.GameID == "" {
		return errors.New("snapshot game ID cannot be empty")
	}

	snapshotJSON, err := json.Marshal(input.Snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal score snapshot: %w", err)
	}

	snapshotKey := fmt.Sprintf("%s%s", snapshotKeyPrefix, input.Snapshot.GameID)
	if err := r.client.Set(ctx, snapshotKey, snapshotJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to upsert score snapshot: %w", err)
	}

	return nil
}

// GetSnapshot retrieves the snapshot for a game
func (r *redisRepository) GetSnapshot(ctx context.Context, input *GetSnapshotInput) (*models.ScoreSnapshot, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("input and game ID cannot be empty")
	}

	snapshotKey := fmt.Sprintf("%s%s", snapshotKeyPrefix, input.GameID)
	snapshotJSON, err := r.client.Get(ctx, snapshotKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to get score snapshot: %w", err)
	}

	var snapshot models.ScoreSnapshot
	if err := json.Unmarshal([]byte(snapshotJSON), &snapshot); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}

	return &snapshot, nil
}
