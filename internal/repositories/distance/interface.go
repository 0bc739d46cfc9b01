package distance

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/geodraw/internal/repositories/distance Repository

import (
	"context"

	"github.com/KirkDiggler/geodraw/internal/models"
)

// Repository defines the interface for distance record persistence.
// Records are keyed by the (game, participant) pair.
type Repository interface {
	// GetRecord retrieves the distance record for one (game, participant)
	GetRecord(ctx context.Context, input *GetRecordInput) (*models.DistanceRecord, error)

	// SaveRecord writes back a distance record
	SaveRecord(ctx context.Context, input *SaveRecordInput) error

	// GetRecordsByGame retrieves every participant's record for a game
	GetRecordsByGame(ctx context.Context, input *GetRecordsByGameInput) ([]*models.DistanceRecord, error)
}
