package game

import "github.com/KirkDiggler/geodraw/internal/models"

type SaveGameInput struct {
	Game *models.Game
}

type GetGameInput struct {
	GameID string
}

type GetGamesBySessionInput struct {
	SessionID string
}

type DeleteGameInput struct {
	GameID string
}
