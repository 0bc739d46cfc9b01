package score

import "github.com/KirkDiggler/geodraw/internal/models"

type UpsertSnapshotInput struct {
	Snapshot *models.ScoreSnapshot
}

type GetSnapshotInput struct {
	GameID string
}
