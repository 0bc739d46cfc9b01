package game

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/geodraw/internal/repositories/game Repository

import (
	"context"

	"github.com/KirkDiggler/geodraw/internal/models"
)

// Repository defines the interface for game data persistence
type Repository interface {
	// SaveGame persists a game
	SaveGame(ctx context.Context, input *SaveGameInput) error

	// GetGame retrieves a game by ID
	GetGame(ctx context.Context, input *GetGameInput) (*models.Game, error)

	// GetGamesBySession retrieves all games played in a session, oldest first
	GetGamesBySession(ctx context.Context, input *GetGamesBySessionInput) ([]*models.Game, error)

	// DeleteGame removes a game
	DeleteGame(ctx context.Context, input *DeleteGameInput) error
}
