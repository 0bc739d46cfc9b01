package game

import (
	"encoding/json"
	"log/slog"

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

const (
	// defaultJitterFloorMeters is the minimum movement counted as distance
	defaultJitterFloorMeters = 0.5

	// defaultMaxTrailPoints caps one participant's compacted trail
	defaultMaxTrailPoints = 800

	// defaultTrailPointBudget caps the combined trail size of a snapshot
	defaultTrailPointBudget = 4000
)

// Config holds the dependencies and tuning of the game service
type Config struct {
	// SessionSvc drives the Lobby/Active transitions
	SessionSvc sessionSvc.Service

	// GameRepo persists game records
	GameRepo gameRepo.Repository

	// DistanceRepo persists per-participant distance records
	DistanceRepo distanceRepo.Repository

	// ScoreRepo persists score snapshots
	ScoreRepo scoreRepo.Repository

	// Clock provides the current time
	Clock clock.Clock

	// UUIDGenerator provides new game IDs
	UUIDGenerator uuid.UUID

	// Picker chooses the Painter when none is requested
	Picker picker.Picker

	// Publisher fans events out to connected clients. Optional:
	// everything works without it, clients just have to poll.
	Publisher realtime.Publisher

	// Logger for saga step failures. Defaults to slog.Default().
	Logger *slog.Logger

	// JitterFloorMeters gates distance increments. Defaults to 0.5.
	JitterFloorMeters float64

	// MaxTrailPoints caps a participant's compacted trail. Defaults to 800.
	MaxTrailPoints int

	// TrailPointBudget caps a snapshot's combined trail points across all
	// participants. Defaults to 4000.
	TrailPointBudget int
}

type StartGameInput struct {
	SessionID string

	// Requester must be the session creator; only the admin starts a round
	Requester string

	// RequestedPainter, when set and a current member, becomes the
	// Painter; otherwise one member is picked at random
	RequestedPainter string
}

type StartGameOutput struct {
	GameID  string
	Players []string
	Roles   map[string]models.Role
	Painter string
}

type EndGameInput struct {
	SessionID string

	// GameID overrides the session's current game, so a painter-side
	// finalize call still lands after an admin already ended the round
	GameID string

	// Results is the free-form scoring payload, stored verbatim
	Results json.RawMessage
}

type EndGameOutput struct {
	GameID string
}

type RecordLocationInput struct {
	GameID      string
	Username    string
	Latitude    float64
	Longitude   float64
	TimestampMs int64
}

type RecordLocationOutput struct {
	TotalDistanceMeters float64
	Sequence            int64
}

type GetLocationsInput struct {
	GameID string
}

// ParticipantLocation is one participant's latest reported state
type ParticipantLocation struct {
	Username            string  `json:"username"`
	Latitude            float64 `json:"latitude"`
	Longitude           float64 `json:"longitude"`
	TimestampMs         int64   `json:"timestampMs"`
	TotalDistanceMeters float64 `json:"totalDistance"`
}

type GetLocationsOutput struct {
	Locations []ParticipantLocation
}

type GetDrawingInput struct {
	GameID string
}

type GetDrawingOutput struct {
	Snapshot *models.ScoreSnapshot
}
