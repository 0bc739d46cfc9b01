package distance

import "github.com/KirkDiggler/geodraw/internal/models"

type GetRecordInput struct {
	GameID   string
	Username string
}

type SaveRecordInput struct {
	Record *models.DistanceRecord
}

type GetRecordsByGameInput struct {
	GameID string
}
