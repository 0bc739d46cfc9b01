package session

import "github.com/KirkDiggler/geodraw/internal/models"

type CreateSessionInput struct {
	Session *models.Session
}

type GetSessionInput struct {
	SessionID string
}

type GetSessionByCreatorInput struct {
	Creator string
}

type SaveSessionInput struct {
	Session *models.Session
}

type DeleteSessionInput struct {
	SessionID string
}
