package score

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/geodraw/internal/repositories/score Repository

import (
	"context"

	"github.com/KirkDiggler/geodraw/internal/models"
)

// Repository defines the interface for score snapshot persistence
type Repository interface {
	// UpsertSnapshot writes a snapshot keyed by game ID. A retried
	// end-game call overwrites the row with the same content, so the
	// write is idempotent.
	UpsertSnapshot(ctx context.Context, input *UpsertSnapshotInput) error

	// GetSnapshot retrieves the snapshot for a game
	GetSnapshot(ctx context.Context, input *GetSnapshotInput) (*models.ScoreSnapshot, error)
}
