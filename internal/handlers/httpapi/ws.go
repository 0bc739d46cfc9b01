package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/geodraw/internal/services/realtime"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The action surface is already open; the feed carries no secrets
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleSessionFeed upgrades to a websocket and relays the session's
// pub/sub events until either side closes. The feed is best-effort: a
// client that misses events just polls the REST surface instead.
func handleSessionFeed(logger *slog.Logger, client *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if client == nil {
			writeError(w, http.StatusServiceUnavailable, "realtime feed unavailable")
			return
		}

		sessionID := chi.URLParam(r, "sessionID")
		if sessionID == "" {
			writeError(w, http.StatusBadRequest, "missing session ID")
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error("websocket upgrade failed", "error", err)
			return
		}
		defer conn.Close()

		sub := client.Subscribe(r.Context(), realtime.Channel(sessionID))
		defer sub.Close()

		// Reader pump: surfaces client closes; inbound frames are ignored
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		ch := sub.Channel()
		for {
			select {
			case <-done:
				return
			case <-r.Context().Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
					logger.Debug("websocket write failed", "session_id", sessionID, "error", err)
					return
				}
			}
		}
	}
}
