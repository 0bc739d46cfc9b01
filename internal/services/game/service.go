package game

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/KirkDiggler/geodraw/internal/common/clock"
	"github.com/KirkDiggler/geodraw/internal/common/uuid"
	"github.com/KirkDiggler/geodraw/internal/models"
	"github.com/KirkDiggler/geodraw/internal/picker"
	distanceRepo "github.com/KirkDiggler/geodraw/internal/repositories/distance"
	gameRepo "github.com/KirkDiggler/geodraw/internal/repositories/game"
	scoreRepo "github.com/KirkDiggler/geodraw/internal/repositories/score"
	"github.com/KirkDiggler/geodraw/internal/services/realtime"
	sessionSvc "github.com/KirkDiggler/geodraw/internal/services/session"
)

// service implements the Service interface
type service struct {
	sessions     sessionSvc.Service
	gameRepo     gameRepo.Repository
	distanceRepo distanceRepo.Repository
	scoreRepo    scoreRepo.Repository
	clock        clock.Clock
	uuid         uuid.UUID
	picker       picker.Picker
	publisher    realtime.Publisher
	logger       *slog.Logger

	jitterFloorMeters float64
	maxTrailPoints    int
	trailPointBudget  int
}

// New creates a new game service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.SessionSvc == nil {
		return nil, ErrNilSessionSvc
	}
	if cfg.GameRepo == nil {
		return nil, ErrNilGameRepo
	}
	if cfg.DistanceRepo == nil {
		return nil, ErrNilDistanceRepo
	}
	if cfg.ScoreRepo == nil {
		return nil, ErrNilScoreRepo
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}
	if cfg.Picker == nil {
		return nil, ErrNilPicker
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	jitter := cfg.JitterFloorMeters
	if jitter <= 0 {
		jitter = defaultJitterFloorMeters
	}

	maxTrail := cfg.MaxTrailPoints
	if maxTrail <= 0 {
		maxTrail = defaultMaxTrailPoints
	}

	budget := cfg.TrailPointBudget
	if budget <= 0 {
		budget = defaultTrailPointBudget
	}

	return &service{
		sessions:          cfg.SessionSvc,
		gameRepo:          cfg.GameRepo,
		distanceRepo:      cfg.DistanceRepo,
		scoreRepo:         cfg.ScoreRepo,
		clock:             cfg.Clock,
		uuid:              cfg.UUIDGenerator,
		picker:            cfg.Picker,
		publisher:         cfg.Publisher,
		logger:            logger,
		jitterFloorMeters: jitter,
		maxTrailPoints:    maxTrail,
		trailPointBudget:  budget,
	}, nil
}

// publish fires a best-effort realtime event; failures are only logged
func (s *service) publish(ctx context.Context, sessionID, event string, payload any) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.Publish(ctx, &realtime.PublishInput{
		SessionID: sessionID,
		Event:     event,
		Payload:   payload,
	})
	if err != nil {
		s.logger.Warn("failed to publish realtime event",
			"event", event, "session_id", sessionID, "error", err)
	}
}

// StartGame freezes the session's membership into a new game, assigns
// exactly one Painter and flips the session to Active.
func (s *service) StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, ErrMissingSessionID
	}
	if input.Requester == "" {
		return nil, ErrMissingUsername
	}

	sessionOut, err := s.sessions.GetSession(ctx, &sessionSvc.GetSessionInput{
		SessionID: input.SessionID,
	})
	if err != nil {
		if errors.Is(err, sessionSvc.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	session := sessionOut.Session

	if input.Requester != session.Creator {
		return nil, ErrNotAdmin
	}
	if session.Active {
		return nil, ErrSessionActive
	}
	if len(session.Members) == 0 {
		return nil, ErrNoMembers
	}

	// Freeze the member set and assign roles
	players := append([]string(nil), session.Members...)

	painter := input.RequestedPainter
	if painter == "" || !session.HasMember(painter) {
		painter = s.picker.Pick(players)
	}

	roles := make(map[string]models.Role, len(players))
	for _, p := range players {
		if p == painter {
			roles[p] = models.RolePainter
		} else {
			roles[p] = models.RoleBrush
		}
	}

	game := &models.Game{
		ID:          s.uuid.NewUUID(),
		SessionID:   session.ID,
		Players:     players,
		Roles:       roles,
		Status:      models.GameStatusInProgress,
		TimeStarted: s.clock.Now(),
	}

	if err := s.gameRepo.SaveGame(ctx, &gameRepo.SaveGameInput{Game: game}); err != nil {
		return nil, err
	}

	// The activation re-checks the lobby state under the session lease, so
	// a concurrent start loses here. Its game record must not survive.
	if _, err := s.sessions.Activate(ctx, &sessionSvc.ActivateInput{
		SessionID: session.ID,
		GameID:    game.ID,
		Roles:     roles,
		Painter:   painter,
	}); err != nil {
		if delErr := s.gameRepo.DeleteGame(ctx, &gameRepo.DeleteGameInput{GameID: game.ID}); delErr != nil {
			s.logger.Warn("failed to delete orphaned game after activation failure",
				"game_id", game.ID, "error", delErr)
		}
		if errors.Is(err, sessionSvc.ErrSessionActive) {
			return nil, ErrSessionActive
		}
		return nil, err
	}

	s.publish(ctx, session.ID, realtime.EventGameStarted, map[string]any{
		"gameId":  game.ID,
		"players": players,
		"roles":   roles,
		"painter": painter,
	})

	return &StartGameOutput{
		GameID:  game.ID,
		Players: players,
		Roles:   roles,
		Painter: painter,
	}, nil
}

// EndGame completes the target game, writes the score snapshot and always
// returns the session to the lobby. The first two steps are best-effort:
// their failures are logged, never allowed to strand the session in
// Active.
func (s *service) EndGame(ctx context.Context, input *EndGameInput) (*EndGameOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, ErrMissingSessionID
	}

	sessionOut, err := s.sessions.GetSession(ctx, &sessionSvc.GetSessionInput{
		SessionID: input.SessionID,
	})
	if err != nil {
		if errors.Is(err, sessionSvc.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	session := sessionOut.Session

	// The session's current game wins; an explicit gameId supports the
	// painter finalizing after an admin already ended the round.
	gameID := session.CurrentGameID
	if gameID == "" {
		gameID = input.GameID
	}

	if gameID != "" {
		s.completeGame(ctx, session, gameID, input.Results)
	}

	// Liveness-critical step: always runs, and its error is the only one
	// surfaced to the caller.
	if _, err := s.sessions.Deactivate(ctx, &sessionSvc.DeactivateInput{
		SessionID: session.ID,
	}); err != nil {
		return nil, err
	}

	s.publish(ctx, session.ID, realtime.EventGameEnded, map[string]any{
		"gameId": gameID,
	})

	return &EndGameOutput{GameID: gameID}, nil
}

// completeGame marks the game completed and persists the score snapshot.
// Both writes are best-effort.
func (s *service) completeGame(ctx context.Context, session *models.Session, gameID string, results []byte) {
	game, err := s.gameRepo.GetGame(ctx, &gameRepo.GetGameInput{GameID: gameID})
	if err != nil {
		s.logger.Warn("end game: failed to load game", "game_id", gameID, "error", err)
		return
	}

	now := s.clock.Now()
	parsed := parseResults(results)

	game.Status = models.GameStatusCompleted
	game.TimeCompleted = &now
	if len(results) > 0 {
		game.Results = append([]byte(nil), results...)
	}
	if parsed.Team != nil {
		game.TeamAccuracy = parsed.Team.AdjustedPct
		game.TeamF1 = parsed.Team.AccuracyPct
	}

	if err := s.gameRepo.SaveGame(ctx, &gameRepo.SaveGameInput{Game: game}); err != nil {
		s.logger.Warn("end game: failed to save completed game", "game_id", gameID, "error", err)
	}

	snapshot := s.buildSnapshot(game, session, parsed, now)
	if err := s.scoreRepo.UpsertSnapshot(ctx, &scoreRepo.UpsertSnapshotInput{
		Snapshot: snapshot,
	}); err != nil {
		s.logger.Warn("end game: failed to write score snapshot", "game_id", gameID, "error", err)
	}
}

// GetDrawing returns the persisted score snapshot for a completed game
func (s *service) GetDrawing(ctx context.Context, input *GetDrawingInput) (*GetDrawingOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, ErrMissingGameID
	}

	snapshot, err := s.scoreRepo.GetSnapshot(ctx, &scoreRepo.GetSnapshotInput{
		GameID: input.GameID,
	})
	if err != nil {
		if errors.Is(err, scoreRepo.ErrSnapshotNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	return &GetDrawingOutput{Snapshot: snapshot}, nil
}

// durationSec returns end-start in whole seconds, clamped to >= 0
func durationSec(start, end time.Time) int64 {
	d := end.Sub(start)
	if d < 0 {
		return 0
	}
	return int64(d / time.Second)
}
