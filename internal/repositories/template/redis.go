package template

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
	templateKeyPrefix = "template:"
	templateIndexKey  = "templates"
)

// Errors returned by the repository
var (
	// ErrTemplateNotFound is returned when a template is not found
	ErrTemplateNotFound = errors.New("template not found")

	// ErrCorruptTemplate is returned when a stored template fails to parse
	ErrCorruptTemplate = errors.New("stored template is corrupt")
)

// Config holds configuration for the Redis template repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed template repository
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

// GetTemplate retrieves a template by ID from Redis
func (r *redisRepository) GetTemplate(ctx context.Context, input *GetTemplateInput) (*models.ShapeTemplate, error) {
	if input == nil || input.TemplateID == "" {
		return nil, errors.New("input and template ID cannot be empty")
	}

	templateKey := fmt.Sprintf("%s%s", templateKeyPrefix, input.TemplateID)
	templateJSON, err := r.client.Get(ctx, templateKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	var tpl models.ShapeTemplate
	if err := json.Unmarshal([]byte(templateJSON), &tpl); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptTemplate, err)
	}

	return &tpl, nil
}

// ListTemplates retrieves the whole catalog
func (r *redisRepository) ListTemplates(ctx context.Context, input *ListTemplatesInput) ([]*models.ShapeTemplate, error) {
	templateIDs, err := r.client.SMembers(ctx, templateIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	templates := make([]*models.ShapeTemplate, 0, len(templateIDs))
	for _, id := range templateIDs {
		tpl, err := r.GetTemplate(ctx, &GetTemplateInput{TemplateID: id})
		if err != nil {
			if errors.Is(err, ErrTemplateNotFound) {
				continue
			}
			return nil, err
		}
		templates = append(templates, tpl)
	}

	return templates, nil
}

// Seed installs the built-in templates. Existing rows are left alone so a
// restart never clobbers catalog edits.
func (r *redisRepository) Seed(ctx context.Context) error {
	for _, tpl := range BuiltinTemplates() {
		templateJSON, err := json.Marshal(tpl)
		if err != nil {
			return fmt.Errorf("failed to marshal template %s: %w", tpl.ID, err)
		}

		templateKey := fmt.Sprintf("%s%s", templateKeyPrefix, tpl.ID)
		if err := r.client.SetNX(ctx, templateKey, templateJSON, 0).Err(); err != nil {
			return fmt.Errorf("failed to seed template %s: %w", tpl.ID, err)
		}
		if err := r.client.SAdd(ctx, templateIndexKey, tpl.ID).Err(); err != nil {
			return fmt.Errorf("failed to index template %s: %w", tpl.ID, err)
		}
	}

	return nil
}
