package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	// sessionChannelPrefix namespaces the pub/sub channel per session
	sessionChannelPrefix = "session_events:"
)

// Config holds configuration for the Redis publisher
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// service implements the Publisher interface over Redis pub/sub
type service struct {
	client *redis.Client
}

// New creates a new Redis-backed publisher
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	return &service{
		client: cfg.RedisClient,
	}, nil
}

// Channel returns the pub/sub channel name for a session's event group
func Channel(sessionID string) string {
	return fmt.Sprintf("%s%s", sessionChannelPrefix, sessionID)
}

// Publish sends one event to a session's group. Subscribers that are not
// connected simply miss the event; nothing is queued.
func (s *service) Publish(ctx context.Context, input *PublishInput) error {
	if input == nil || input.SessionID == "" || input.Event == "" {
		return errors.New("input, session ID and event cannot be empty")
	}

	var payload json.RawMessage
	if input.Payload != nil {
		b, err := json.Marshal(input.Payload)
		if err != nil {
			return fmt.Errorf("failed to marshal event payload: %w", err)
		}
		payload = b
	}

	envelope, err := json.Marshal(Envelope{
		Event:   input.Event,
		Payload: payload,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event envelope: %w", err)
	}

	if err := s.client.Publish(ctx, Channel(input.SessionID), envelope).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}
