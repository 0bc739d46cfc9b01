package httpapi

import (
	"net/http"

	gameSvc "github.com/KirkDiggler/geodraw/internal/services/game"
)

type sendLocationRequest struct {
	GameID   string `json:"gameId"`
	Location struct {
		Latitude    float64 `json:"latitude"`
		Longitude   float64 `json:"longitude"`
		TimestampMs int64   `json:"timestampMs"`
	} `json:"location"`
}

func handleSendLocation(svc gameSvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := r.Header.Get(usernameHeader)
		if username == "" {
			writeError(w, http.StatusBadRequest, "missing X-Username header")
			return
		}

		var req sendLocationRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		out, err := svc.RecordLocation(r.Context(), &gameSvc.RecordLocationInput{
			GameID:      req.GameID,
			Username:    username,
			Latitude:    req.Location.Latitude,
			Longitude:   req.Location.Longitude,
			TimestampMs: req.Location.TimestampMs,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"totalDistance": out.TotalDistanceMeters,
			"sequence":      out.Sequence,
		})
	}
}

func handleGetLocations(svc gameSvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID := r.URL.Query().Get("gameId")
		if gameID == "" {
			writeError(w, http.StatusBadRequest, "missing gameId")
			return
		}

		out, err := svc.GetLocations(r.Context(), &gameSvc.GetLocationsInput{
			GameID: gameID,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, out.Locations)
	}
}
