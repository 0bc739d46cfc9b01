package session

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/KirkDiggler/geodraw/internal/common/clock"
	"github.com/KirkDiggler/geodraw/internal/common/uuid"
	"github.com/KirkDiggler/geodraw/internal/geo"
	"github.com/KirkDiggler/geodraw/internal/models"
	sessionRepo "github.com/KirkDiggler/geodraw/internal/repositories/session"
	templateRepo "github.com/KirkDiggler/geodraw/internal/repositories/template"
)

// service implements the Service interface
type service struct {
	sessionRepo  sessionRepo.Repository
	templateRepo templateRepo.Repository
	clock        clock.Clock
	uuid         uuid.UUID
}

// New creates a new session service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}
	if cfg.TemplateRepo == nil {
		return nil, ErrNilTemplateRepo
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	return &service{
		sessionRepo:  cfg.SessionRepo,
		templateRepo: cfg.TemplateRepo,
		clock:        cfg.Clock,
		uuid:         cfg.UUIDGenerator,
	}, nil
}

// CreateSession creates a lobby with the creator as its first member
func (s *service) CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error) {
	if input == nil || input.Creator == "" {
		return nil, ErrMissingUsername
	}

	now := s.clock.Now()
	session := &models.Session{
		ID:        s.uuid.NewUUID(),
		Creator:   input.Creator,
		Members:   []string{input.Creator},
		Readiness: map[string]bool{input.Creator: false},
		Active:    false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.sessionRepo.CreateSession(ctx, &sessionRepo.CreateSessionInput{
		Session: session,
	}); err != nil {
		return nil, err
	}

	return &CreateSessionOutput{
		SessionID: session.ID,
		Session:   session,
	}, nil
}

// resolve finds a session by ID, falling back to the creator index
func (s *service) resolve(ctx context.Context, sessionID, creator string) (*models.Session, error) {
	if sessionID != "" {
		session, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{
			SessionID: sessionID,
		})
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return session, err
	}

	if creator != "" {
		session, err := s.sessionRepo.GetSessionByCreator(ctx, &sessionRepo.GetSessionByCreatorInput{
			Creator: creator,
		})
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return session, err
	}

	return nil, ErrMissingSessionID
}

// GetSession retrieves a session by ID or by creator username
func (s *service) GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error) {
	if input == nil {
		return nil, ErrMissingSessionID
	}

	session, err := s.resolve(ctx, input.SessionID, input.Creator)
	if err != nil {
		return nil, err
	}

	return &GetSessionOutput{Session: session}, nil
}

// mutate runs fn against the current session record under the per-session
// lease and persists the result. Every lobby transition is one of these
// read-modify-write cycles.
func (s *service) mutate(ctx context.Context, sessionID string, fn func(session *models.Session) error) (*models.Session, error) {
	var out *models.Session

	err := s.sessionRepo.WithSessionLock(ctx, sessionID, func(ctx context.Context) error {
		session, err := s.resolve(ctx, sessionID, "")
		if err != nil {
			return err
		}

		if err := fn(session); err != nil {
			return err
		}

		session.UpdatedAt = s.clock.Now()
		if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{
			Session: session,
		}); err != nil {
			return err
		}

		out = session
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// Join adds a member to a lobby; joining twice is a no-op
func (s *service) Join(ctx context.Context, input *JoinInput) (*JoinOutput, error) {
	if input == nil || input.Username == "" {
		return nil, ErrMissingUsername
	}

	sessionID, err := s.resolveID(ctx, input.SessionID, input.Creator)
	if err != nil {
		return nil, err
	}

	session, err := s.mutate(ctx, sessionID, func(session *models.Session) error {
		if session.Active {
			return ErrSessionActive
		}
		if !session.HasMember(input.Username) {
			if session.Readiness == nil {
				session.Readiness = make(map[string]bool)
			}
			session.Members = append(session.Members, input.Username)
			session.Readiness[input.Username] = false
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &JoinOutput{
		SessionID: session.ID,
		Session:   session,
	}, nil
}

// SetReady flips a member's ready flag. A ready request from a user who
// has not joined yet joins them first, matching the lobby client which
// sends join and ready through the same action.
func (s *service) SetReady(ctx context.Context, input *SetReadyInput) (*SetReadyOutput, error) {
	if input == nil || input.Username == "" {
		return nil, ErrMissingUsername
	}

	sessionID, err := s.resolveID(ctx, input.SessionID, input.Creator)
	if err != nil {
		return nil, err
	}

	session, err := s.mutate(ctx, sessionID, func(session *models.Session) error {
		if session.Active {
			return ErrSessionActive
		}
		if !session.HasMember(input.Username) {
			session.Members = append(session.Members, input.Username)
		}
		if session.Readiness == nil {
			session.Readiness = make(map[string]bool)
		}
		session.Readiness[input.Username] = input.Ready
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &SetReadyOutput{Session: session}, nil
}

// Leave removes a member from a lobby. The creator leaving deletes the
// whole session regardless of who remains; the last member leaving
// deletes it too.
func (s *service) Leave(ctx context.Context, input *LeaveInput) (*LeaveOutput, error) {
	if input == nil || input.Username == "" {
		return nil, ErrMissingUsername
	}

	sessionID, err := s.resolveID(ctx, input.SessionID, input.Creator)
	if err != nil {
		return nil, err
	}

	var out LeaveOutput

	err = s.sessionRepo.WithSessionLock(ctx, sessionID, func(ctx context.Context) error {
		session, err := s.resolve(ctx, sessionID, "")
		if err != nil {
			return err
		}

		if session.Active {
			return ErrSessionActive
		}
		if !session.HasMember(input.Username) {
			return ErrNotMember
		}

		// Admin departure kills the lobby
		if input.Username == session.Creator {
			out.Deleted = true
			return s.sessionRepo.DeleteSession(ctx, &sessionRepo.DeleteSessionInput{
				SessionID: session.ID,
			})
		}

		members := make([]string, 0, len(session.Members)-1)
		for _, m := range session.Members {
			if m != input.Username {
				members = append(members, m)
			}
		}
		session.Members = members
		delete(session.Readiness, input.Username)

		if len(session.Members) == 0 {
			out.Deleted = true
			return s.sessionRepo.DeleteSession(ctx, &sessionRepo.DeleteSessionInput{
				SessionID: session.ID,
			})
		}

		session.UpdatedAt = s.clock.Now()
		if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{
			Session: session,
		}); err != nil {
			return err
		}

		out.Session = session
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

// resolveShape turns the configured template into concrete geography.
// Any failure here leaves the previous shape config untouched.
func (s *service) resolveShape(ctx context.Context, input *ConfigureShapeInput) (*models.ShapeConfig, error) {
	// Free-form polygon: vertices arrive in geographic coordinates
	if input.TemplateID == models.TemplateIDPolygon {
		vertices, err := geo.PassThrough(input.Vertices)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidShape, err)
		}

		center := input.Center
		if center == nil {
			c, err := geo.Centroid(vertices)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidShape, err)
			}
			center = &c
		}

		return &models.ShapeConfig{
			TemplateID:   input.TemplateID,
			Center:       *center,
			RadiusMeters: input.RadiusMeters,
			ZoomLevel:    input.ZoomLevel,
			Vertices:     vertices,
		}, nil
	}

	if input.Center == nil {
		return nil, fmt.Errorf("%w: center is required", ErrInvalidShape)
	}

	tpl, err := s.templateRepo.GetTemplate(ctx, &templateRepo.GetTemplateInput{
		TemplateID: input.TemplateID,
	})
	if err != nil {
		if errors.Is(err, templateRepo.ErrTemplateNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}

	vertices, err := geo.Materialize(tpl.BaseVertices, *input.Center, input.RadiusMeters)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidShape, err)
	}

	return &models.ShapeConfig{
		TemplateID:   input.TemplateID,
		Center:       *input.Center,
		RadiusMeters: input.RadiusMeters,
		ZoomLevel:    input.ZoomLevel,
		Vertices:     vertices,
	}, nil
}

// ConfigureShape resolves a template into concrete geography and stores it
func (s *service) ConfigureShape(ctx context.Context, input *ConfigureShapeInput) (*ConfigureShapeOutput, error) {
	if input == nil || input.Username == "" {
		return nil, ErrMissingUsername
	}
	if input.TemplateID == "" {
		return nil, fmt.Errorf("%w: template ID is required", ErrInvalidShape)
	}

	sessionID, err := s.resolveID(ctx, input.SessionID, input.Creator)
	if err != nil {
		return nil, err
	}

	shape, err := s.resolveShape(ctx, input)
	if err != nil {
		return nil, err
	}

	_, err = s.mutate(ctx, sessionID, func(session *models.Session) error {
		if session.Creator != input.Username {
			return ErrNotAdmin
		}
		if session.Active {
			return ErrSessionActive
		}
		session.ShapeConfig = shape
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ConfigureShapeOutput{ShapeConfig: shape}, nil
}

// ListTemplates returns the shape catalog, sorted by ID so the picker
// renders in a stable order
func (s *service) ListTemplates(ctx context.Context, input *ListTemplatesInput) (*ListTemplatesOutput, error) {
	templates, err := s.templateRepo.ListTemplates(ctx, &templateRepo.ListTemplatesInput{})
	if err != nil {
		return nil, err
	}

	sort.Slice(templates, func(i, j int) bool {
		return templates[i].ID < templates[j].ID
	})

	return &ListTemplatesOutput{Templates: templates}, nil
}

// ConfigureDefaultCenter stores a map-centering hint for non-admin clients
func (s *service) ConfigureDefaultCenter(ctx context.Context, input *ConfigureDefaultCenterInput) (*ConfigureDefaultCenterOutput, error) {
	if input == nil || input.Username == "" {
		return nil, ErrMissingUsername
	}
	if !geo.ValidLocation(input.Center.Latitude, input.Center.Longitude) {
		return nil, fmt.Errorf("%w: center is invalid", ErrInvalidShape)
	}

	sessionID, err := s.resolveID(ctx, input.SessionID, input.Creator)
	if err != nil {
		return nil, err
	}

	_, err = s.mutate(ctx, sessionID, func(session *models.Session) error {
		if session.Creator != input.Username {
			return ErrNotAdmin
		}
		if session.Active {
			return ErrSessionActive
		}
		center := input.Center
		session.DefaultCenter = &center
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ConfigureDefaultCenterOutput{}, nil
}

// Activate moves Lobby -> Active, mirroring the game's roles for fast reads
func (s *service) Activate(ctx context.Context, input *ActivateInput) (*ActivateOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, ErrMissingSessionID
	}

	session, err := s.mutate(ctx, input.SessionID, func(session *models.Session) error {
		if session.Active {
			return ErrSessionActive
		}
		session.Active = true
		session.CurrentGameID = input.GameID
		session.Roles = input.Roles
		session.Painter = input.Painter
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ActivateOutput{Session: session}, nil
}

// Deactivate moves the session back to the lobby. Deactivating a session
// already in the lobby is a no-op so end-game retries cannot fail here.
func (s *service) Deactivate(ctx context.Context, input *DeactivateInput) (*DeactivateOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, ErrMissingSessionID
	}

	session, err := s.mutate(ctx, input.SessionID, func(session *models.Session) error {
		session.Active = false
		session.CurrentGameID = ""
		session.Roles = nil
		session.Painter = ""
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &DeactivateOutput{Session: session}, nil
}

// resolveID returns the session ID, looking it up by creator when needed
func (s *service) resolveID(ctx context.Context, sessionID, creator string) (string, error) {
	if sessionID != "" {
		return sessionID, nil
	}
	session, err := s.resolve(ctx, "", creator)
	if err != nil {
		return "", err
	}
	return session.ID, nil
}
