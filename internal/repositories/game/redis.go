package game

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
	gameKeyPrefix         = "game:"
	sessionGamesKeyPrefix = "session_games:"
)

// Errors returned by the repository
var (
	// ErrGameNotFound is returned when a game is not found
	ErrGameNotFound = errors.New("game not found")

	// ErrCorruptGame is returned when a stored game fails to parse
	ErrCorruptGame = errors.New("stored game is corrupt")
)

// Config holds configuration for the Redis game repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed game repository
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

// SaveGame persists a game to Redis
func (r *redisRepository) SaveGame(ctx context.Context, input *SaveGameInput) error {
	if input == nil || input.Game == nil {
		return errors.New("input and game cannot be nil")
	}

	if input.Game.ID == "" {
		return errors.New("game ID cannot be empty")
	}

	// Marshal the game to JSON
	gameJSON, err := json.Marshal(input.Game)
	if err != nil {
		return fmt.Errorf("failed to marshal game: %w", err)
	}

	pipe := r.client.Pipeline()

	// Save the game
	gameKey := fmt.Sprintf("%s%s", gameKeyPrefix, input.Game.ID)
	pipe.Set(ctx, gameKey, gameJSON, 0)

	// Index the game under its session, scored by start time
	if input.Game.SessionID != "" {
		sessionGamesKey := fmt.Sprintf("%s%s", sessionGamesKeyPrefix, input.Game.SessionID)
		pipe.ZAdd(ctx, sessionGamesKey, redis.Z{
			Score:  float64(input.Game.TimeStarted.UnixNano()),
			Member: input.Game.ID,
		})
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}

	return nil
}

// GetGame retrieves a game by ID from Redis
func (r *redisRepository) GetGame(ctx context.Context, input *GetGameInput) (*models.Game, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("input and game ID cannot be empty")
	}

	gameKey := fmt.Sprintf("%s%s", gameKeyPrefix, input.GameID)
	gameJSON, err := r.client.Get(ctx, gameKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	var game models.Game
	if err := json.Unmarshal([]byte(gameJSON), &game); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptGame, err)
	}

	return &game, nil
}

// GetGamesBySession retrieves all games played in a session, oldest first
func (r *redisRepository) GetGamesBySession(ctx context.Context, input *GetGamesBySessionInput) ([]*models.Game, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	sessionGamesKey := fmt.Sprintf("%s%s", sessionGamesKeyPrefix, input.SessionID)
	gameIDs, err := r.client.ZRange(ctx, sessionGamesKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get session games: %w", err)
	}

	games := make([]*models.Game, 0, len(gameIDs))
	for _, gameID := range gameIDs {
		game, err := r.GetGame(ctx, &GetGameInput{GameID: gameID})
		if err != nil {
			// Skip games deleted between the index read and the fetch
			if errors.Is(err, ErrGameNotFound) {
				continue
			}
			return nil, err
		}
		games = append(games, game)
	}

	return games, nil
}

// DeleteGame removes a game from Redis
func (r *redisRepository) DeleteGame(ctx context.Context, input *DeleteGameInput) error {
	if input == nil || input.GameID == "" {
		return errors.New("input and game ID cannot be empty")
	}

	// Get the game first to find its session index entry
	game, err := r.GetGame(ctx, &GetGameInput{
		GameID: input.GameID,
	})
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()

	gameKey := fmt.Sprintf("%s%s", gameKeyPrefix, input.GameID)
	pipe.Del(ctx, gameKey)

	if game.SessionID != "" {
		sessionGamesKey := fmt.Sprintf("%s%s", sessionGamesKeyPrefix, game.SessionID)
		pipe.ZRem(ctx, sessionGamesKey, input.GameID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return nil
}
