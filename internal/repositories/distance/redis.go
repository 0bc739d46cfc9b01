package distance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/geodraw/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	recordKeyPrefix        = "distance:"
	gameDistancesKeyPrefix = "game_distances:"
)

// Errors returned by the repository
var (
	// ErrRecordNotFound is returned when no record exists for the key
	ErrRecordNotFound = errors.New("distance record not found")

	// ErrCorruptRecord is returned when a stored record fails to parse
	ErrCorruptRecord = errors.New("stored distance record is corrupt")
)

// Config holds configuration for the Redis distance repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed distance repository
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

func recordKey(gameID, username string) string {
	return fmt.Sprintf("%s%s:%s", recordKeyPrefix, gameID, username)
}

// GetRecord retrieves the distance record for one (game, participant)
func (r *redisRepository) GetRecord(ctx context.Context, input *GetRecordInput) (*models.DistanceRecord, error) {
	if input == nil || input.GameID == "" || input.Username == "" {
		return nil, errors.New("input, game ID and username cannot be empty")
	}

	recordJSON, err := r.client.Get(ctx, recordKey(input.GameID, input.Username)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get distance record: %w", err)
	}

	var record models.DistanceRecord
	if err := json.Unmarshal([]byte(recordJSON), &record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}

	return &record, nil
}

// SaveRecord writes back a distance record
func (r *redisRepository) SaveRecord(ctx context.Context, input *SaveRecordInput) error {
	if input == nil || input.Record == nil {
		return errors.New("input and record cannot be nil")
	}

	record := input.Record
	if record.GameID == "" || record.Username == "" {
		return errors.New("record game ID and username cannot be empty")
	}

	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal distance record: %w", err)
	}

	pipe := r.client.Pipeline()

	pipe.Set(ctx, recordKey(record.GameID, record.Username), recordJSON, 0)

	// Track which participants have records for this game
	gameDistancesKey := fmt.Sprintf("%s%s", gameDistancesKeyPrefix, record.GameID)
	pipe.SAdd(ctx, gameDistancesKey, record.Username)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save distance record: %w", err)
	}

	return nil
}

// GetRecordsByGame retrieves every participant's record for a game
func (r *redisRepository) GetRecordsByGame(ctx context.Context, input *GetRecordsByGameInput) ([]*models.DistanceRecord, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("input and game ID cannot be empty")
	}

	gameDistancesKey := fmt.Sprintf("%s%s", gameDistancesKeyPrefix, input.GameID)
	usernames, err := r.client.SMembers(ctx, gameDistancesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get game participants: %w", err)
	}

	records := make([]*models.DistanceRecord, 0, len(usernames))
	for _, username := range usernames {
		record, err := r.GetRecord(ctx, &GetRecordInput{
			GameID:   input.GameID,
			Username: username,
		})
		if err != nil {
			// Skip records removed between the index read and the fetch
			if errors.Is(err, ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}
