package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	gameSvc "github.com/KirkDiggler/geodraw/internal/services/game"
	sessionSvc "github.com/KirkDiggler/geodraw/internal/services/session"
)

// usernameHeader carries the caller's identity; the original clients send
// it on every request
const usernameHeader = "X-Username"

// Config holds the handler dependencies
type Config struct {
	Logger      *slog.Logger
	SessionSvc  sessionSvc.Service
	GameSvc     gameSvc.Service
	RedisClient *redis.Client
}

// New builds the HTTP router for the action surface
func New(cfg *Config) chi.Router {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	r.Get("/healthz", handleHealth(logger, cfg.RedisClient))

	r.Route("/api", func(r chi.Router) {
		r.Post("/sessions", handleCreateSession(cfg.SessionSvc))
		r.Get("/sessions/{sessionID}", handleGetSession(cfg.SessionSvc))
		r.Post("/sessions/actions", handleSessionAction(cfg.SessionSvc))

		r.Get("/templates", handleListTemplates(cfg.SessionSvc))

		r.Post("/games/start", handleStartGame(cfg.GameSvc))
		r.Post("/games/end", handleEndGame(cfg.GameSvc))
		r.Get("/games/{gameID}/drawing", handleGetDrawing(cfg.GameSvc))

		r.Post("/locations", handleSendLocation(cfg.GameSvc))
		r.Get("/locations", handleGetLocations(cfg.GameSvc))
	})

	r.Get("/ws/sessions/{sessionID}", handleSessionFeed(logger, cfg.RedisClient))

	return r
}

func handleHealth(logger *slog.Logger, client *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if client != nil {
			if err := client.Ping(r.Context()).Err(); err != nil {
				logger.Error("health check failed", "error", err)
				writeError(w, http.StatusServiceUnavailable, "storage unreachable")
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
