package session

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/geodraw/internal/repositories/session Repository

import (
	"context"

	"github.com/KirkDiggler/geodraw/internal/models"
)

// Repository defines the interface for session data persistence
type Repository interface {
	// CreateSession persists a new session, failing if the ID is taken
	CreateSession(ctx context.Context, input *CreateSessionInput) error

	// GetSession retrieves a session by ID
	GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error)

	// GetSessionByCreator retrieves the session created by a username
	GetSessionByCreator(ctx context.Context, input *GetSessionByCreatorInput) (*models.Session, error)

	// SaveSession replaces a stored session record
	SaveSession(ctx context.Context, input *SaveSessionInput) error

	// DeleteSession removes a session and its creator index entry
	DeleteSession(ctx context.Context, input *DeleteSessionInput) error

	// WithSessionLock runs fn while holding the per-session lease, so
	// concurrent read-modify-write cycles on one session are serialized
	WithSessionLock(ctx context.Context, sessionID string, fn func(ctx context.Context) error) error
}
