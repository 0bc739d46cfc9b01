package httpapi

import (
	"errors"
	"net/http"

	"github.com/KirkDiggler/geodraw/internal/repositories/distance"
	gameRepo "github.com/KirkDiggler/geodraw/internal/repositories/game"
	sessionRepo "github.com/KirkDiggler/geodraw/internal/repositories/session"
	"github.com/KirkDiggler/geodraw/internal/repositories/template"
	gameSvc "github.com/KirkDiggler/geodraw/internal/services/game"
	sessionSvc "github.com/KirkDiggler/geodraw/internal/services/session"
)

// writeServiceError maps the service error taxonomy onto HTTP statuses:
// validation 400, not-found 404, conflict 409, authorization 403, corrupt
// stored state 500, anything else (storage failures included) 502.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sessionSvc.ErrSessionNotFound),
		errors.Is(err, sessionSvc.ErrTemplateNotFound),
		errors.Is(err, gameSvc.ErrSessionNotFound),
		errors.Is(err, gameSvc.ErrGameNotFound):
		writeError(w, http.StatusNotFound, err.Error())

	case errors.Is(err, sessionSvc.ErrSessionActive),
		errors.Is(err, gameSvc.ErrSessionActive),
		errors.Is(err, sessionRepo.ErrSessionExists),
		errors.Is(err, sessionRepo.ErrLockNotAcquired):
		writeError(w, http.StatusConflict, err.Error())

	case errors.Is(err, sessionSvc.ErrNotAdmin),
		errors.Is(err, gameSvc.ErrNotAdmin):
		writeError(w, http.StatusForbidden, err.Error())

	case errors.Is(err, sessionSvc.ErrNotMember),
		errors.Is(err, sessionSvc.ErrInvalidShape),
		errors.Is(err, sessionSvc.ErrMissingUsername),
		errors.Is(err, sessionSvc.ErrMissingSessionID),
		errors.Is(err, gameSvc.ErrNoMembers),
		errors.Is(err, gameSvc.ErrInvalidLocation),
		errors.Is(err, gameSvc.ErrMissingUsername),
		errors.Is(err, gameSvc.ErrMissingGameID),
		errors.Is(err, gameSvc.ErrMissingSessionID):
		writeError(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, sessionRepo.ErrCorruptSession),
		errors.Is(err, gameRepo.ErrCorruptGame),
		errors.Is(err, distance.ErrCorruptRecord),
		errors.Is(err, template.ErrCorruptTemplate):
		writeError(w, http.StatusInternalServerError, err.Error())

	default:
		writeError(w, http.StatusBadGateway, "storage unavailable")
	}
}
