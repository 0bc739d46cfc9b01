package session

import (
	"github.com/KirkDiggler/geodraw/internal/common/clock"
	"github.com/KirkDiggler/geodraw/internal/common/uuid"
	"github.com/KirkDiggler/geodraw/internal/models"
	sessionRepo "github.com/KirkDiggler/geodraw/internal/repositories/session"
	templateRepo "github.com/KirkDiggler/geodraw/internal/repositories/template"
)

// Config holds the dependencies of the session service
type Config struct {
	// SessionRepo persists session records
	SessionRepo sessionRepo.Repository

	// TemplateRepo is the read-only shape template catalog
	TemplateRepo templateRepo.Repository

	// Clock provides the current time
	Clock clock.Clock

	// UUIDGenerator provides new session IDs
	UUIDGenerator uuid.UUID
}

type CreateSessionInput struct {
	// Creator becomes the sole admin and first member
	Creator string
}

type CreateSessionOutput struct {
	SessionID string
	Session   *models.Session
}

type GetSessionInput struct {
	// SessionID wins when both are set
	SessionID string
	Creator   string
}

type GetSessionOutput struct {
	Session *models.Session
}

type JoinInput struct {
	SessionID string
	// Creator resolves the session when the joiner only knows the admin
	Creator  string
	Username string
}

type JoinOutput struct {
	SessionID string
	Session   *models.Session
}

type SetReadyInput struct {
	SessionID string
	Creator   string
	Username  string
	Ready     bool
}

type SetReadyOutput struct {
	Session *models.Session
}

type LeaveInput struct {
	SessionID string
	Creator   string
	Username  string
}

type LeaveOutput struct {
	// Deleted is true when the leave tore the session down
	Deleted bool
	Session *models.Session
}

type ConfigureShapeInput struct {
	SessionID string
	Creator   string
	Username  string

	TemplateID   string
	Center       *models.GeoPoint
	RadiusMeters float64
	ZoomLevel    float64

	// Vertices are only read for the free-form polygon template, already
	// in geographic coordinates
	Vertices []models.GeoPoint
}

type ConfigureShapeOutput struct {
	ShapeConfig *models.ShapeConfig
}

type ListTemplatesInput struct {
}

type ListTemplatesOutput struct {
	Templates []*models.ShapeTemplate
}

type ConfigureDefaultCenterInput struct {
	SessionID string
	Creator   string
	Username  string
	Center    models.GeoPoint
}

type ConfigureDefaultCenterOutput struct {
}

type ActivateInput struct {
	SessionID string
	GameID    string
	Roles     map[string]models.Role
	Painter   string
}

type ActivateOutput struct {
	Session *models.Session
}

type DeactivateInput struct {
	SessionID string
}

type DeactivateOutput struct {
	Session *models.Session
}
