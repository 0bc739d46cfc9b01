package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/geodraw/internal/models"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	sessionKeyPrefix = "session:"
	creatorKeyPrefix = "session_creator:"
	lockKeyPrefix    = "session_lock:"

	// Lease parameters for the per-session lock
	lockTTL           = 5 * time.Second
	lockRetryInterval = 25 * time.Millisecond
	lockAcquireWindow = 2 * time.Second
)

// Errors returned by the repository
var (
	// ErrSessionNotFound is returned when a session is not found
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExists is returned when creating a session whose ID is taken
	ErrSessionExists = errors.New("session already exists")

	// ErrCorruptSession is returned when a stored session fails to parse.
	// Distinct from not-found so callers never mistake corruption for absence.
	ErrCorruptSession = errors.New("stored session is corrupt")

	// ErrLockNotAcquired is returned when the per-session lease could not be
	// taken within the acquire window
	ErrLockNotAcquired = errors.New("session lock not acquired")
)

// releaseLockScript deletes the lock key only if we still hold the token
var releaseLockScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// releaseIndexScript deletes the creator index only if it still points at
// the session being removed
var releaseIndexScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// Config holds configuration for the Redis session repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed session repository
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

// CreateSession persists a new session, failing if the ID is already taken
func (r *redisRepository) CreateSession(ctx context.Context, input *CreateSessionInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}

	if input.Session.ID == "" {
		return errors.New("session ID cannot be empty")
	}

	sessionJSON, err := json.Marshal(input.Session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	sessionKey := fmt.Sprintf("%s%s", sessionKeyPrefix, input.Session.ID)
	ok, err := r.client.SetNX(ctx, sessionKey, sessionJSON, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	if !ok {
		return ErrSessionExists
	}

	// Index the session by its creator for lookup by creator name
	if input.Session.Creator != "" {
		creatorKey := fmt.Sprintf("%s%s", creatorKeyPrefix, input.Session.Creator)
		if err := r.client.Set(ctx, creatorKey, input.Session.ID, 0).Err(); err != nil {
			return fmt.Errorf("failed to index session creator: %w", err)
		}
	}

	return nil
}

// GetSession retrieves a session by ID from Redis
func (r *redisRepository) GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	sessionKey := fmt.Sprintf("%s%s", sessionKeyPrefix, input.SessionID)
	sessionJSON, err := r.client.Get(ctx, sessionKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal([]byte(sessionJSON), &session); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSession, err)
	}

	return &session, nil
}

// GetSessionByCreator retrieves the session created by a username
func (r *redisRepository) GetSessionByCreator(ctx context.Context, input *GetSessionByCreatorInput) (*models.Session, error) {
	if input == nil || input.Creator == "" {
		return nil, errors.New("input and creator cannot be empty")
	}

	creatorKey := fmt.Sprintf("%s%s", creatorKeyPrefix, input.Creator)
	sessionID, err := r.client.Get(ctx, creatorKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session ID for creator: %w", err)
	}

	return r.GetSession(ctx, &GetSessionInput{
		SessionID: sessionID,
	})
}

// SaveSession replaces a stored session record
func (r *redisRepository) SaveSession(ctx context.Context, input *SaveSessionInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}

	if input.Session.ID == "" {
		return errors.New("session ID cannot be empty")
	}

	sessionJSON, err := json.Marshal(input.Session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	sessionKey := fmt.Sprintf("%s%s", sessionKeyPrefix, input.Session.ID)
	if err := r.client.Set(ctx, sessionKey, sessionJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// DeleteSession removes a session and its creator index entry
func (r *redisRepository) DeleteSession(ctx context.Context, input *DeleteSessionInput) error {
	if input == nil || input.SessionID == "" {
		return errors.New("input and session ID cannot be empty")
	}

	// Get the session first to find its creator index entry
	session, err := r.GetSession(ctx, &GetSessionInput{
		SessionID: input.SessionID,
	})
	if err != nil {
		return err
	}

	sessionKey := fmt.Sprintf("%s%s", sessionKeyPrefix, input.SessionID)
	if err := r.client.Del(ctx, sessionKey).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	// Only drop the creator index if it still points at this session, so
	// deleting an older session cannot strand a newer one by the same creator
	if session.Creator != "" {
		creatorKey := fmt.Sprintf("%s%s", creatorKeyPrefix, session.Creator)
		if err := releaseIndexScript.Run(ctx, r.client, []string{creatorKey}, input.SessionID).Err(); err != nil {
			return fmt.Errorf("failed to delete session creator index: %w", err)
		}
	}

	return nil
}

// WithSessionLock serializes read-modify-write cycles on one session. The
// lease is a SETNX key with a TTL so a crashed holder cannot wedge the
// session forever.
func (r *redisRepository) WithSessionLock(ctx context.Context, sessionID string, fn func(ctx context.Context) error) error {
	if sessionID == "" {
		return errors.New("session ID cannot be empty")
	}

	lockKey := fmt.Sprintf("%s%s", lockKeyPrefix, sessionID)
	token := uuid.New().String()

	deadline := time.Now().Add(lockAcquireWindow)
	for {
		ok, err := r.client.SetNX(ctx, lockKey, token, lockTTL).Result()
		if err != nil {
			return fmt.Errorf("failed to acquire session lock: %w", err)
		}
		if ok {
			break
		}
		if time.Now().After(deadline) {
			return ErrLockNotAcquired
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(lockRetryInterval):
		}
	}

	defer func() {
		// Release only if we still hold the token
		_ = releaseLockScript.Run(context.WithoutCancel(ctx), r.client, []string{lockKey}, token).Err()
	}()

	return fn(ctx)
}
