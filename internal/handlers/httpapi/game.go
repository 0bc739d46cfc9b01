package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	gameSvc "github.com/KirkDiggler/geodraw/internal/services/game"
)

type startGameRequest struct {
	SessionID string `json:"sessionId"`
	Painter   string `json:"painter,omitempty"`
}

func handleStartGame(svc gameSvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := r.Header.Get(usernameHeader)
		if username == "" {
			writeError(w, http.StatusBadRequest, "missing X-Username header")
			return
		}

		var req startGameRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		out, err := svc.StartGame(r.Context(), &gameSvc.StartGameInput{
			SessionID:        req.SessionID,
			Requester:        username,
			RequestedPainter: req.Painter,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"gameId":  out.GameID,
			"players": out.Players,
			"roles":   out.Roles,
			"painter": out.Painter,
		})
	}
}

type endGameRequest struct {
	SessionID string          `json:"sessionId"`
	GameID    string          `json:"gameId,omitempty"`
	Results   json.RawMessage `json:"results,omitempty"`
}

func handleEndGame(svc gameSvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req endGameRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		out, err := svc.EndGame(r.Context(), &gameSvc.EndGameInput{
			SessionID: req.SessionID,
			GameID:    req.GameID,
			Results:   req.Results,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{
			"message": "game ended",
			"gameId":  out.GameID,
		})
	}
}

func handleGetDrawing(svc gameSvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.GetDrawing(r.Context(), &gameSvc.GetDrawingInput{
			GameID: chi.URLParam(r, "gameID"),
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, out.Snapshot)
	}
}
