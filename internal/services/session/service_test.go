package session

import (
	"context"
	"testing"
	"time"

	clockMock "github.com/KirkDiggler/geodraw/internal/common/clock/mocks"
	uuidMock "github.com/KirkDiggler/geodraw/internal/common/uuid/mocks"
	"github.com/KirkDiggler/geodraw/internal/models"
	sessionRepo "github.com/KirkDiggler/geodraw/internal/repositories/session"
	templateRepo "github.com/KirkDiggler/geodraw/internal/repositories/template"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SessionServiceTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	mr        *miniredis.Miniredis
	client    *redis.Client
	mockClock *clockMock.MockClock
	mockUUID  *uuidMock.MockUUID
	service   Service
	testNow   time.Time
}

func (s *SessionServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	// Real repositories on a fresh miniredis so lock and index behavior
	// is exercised, with the clock and IDs pinned
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	sessions, err := sessionRepo.NewRedis(&sessionRepo.Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)

	templates, err := templateRepo.NewRedis(&templateRepo.Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.Require().NoError(templates.Seed(context.Background()))

	s.testNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	s.mockClock = clockMock.NewMockClock(s.ctrl)
	s.mockClock.EXPECT().Now().Return(s.testNow).AnyTimes()

	s.mockUUID = uuidMock.NewMockUUID(s.ctrl)
	s.mockUUID.EXPECT().NewUUID().Return("test-session-id").AnyTimes()

	svc, err := New(&Config{
		SessionRepo:   sessions,
		TemplateRepo:  templates,
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
	})
	s.Require().NoError(err)
	s.service = svc
}

func (s *SessionServiceTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
	s.ctrl.Finish()
}

func TestSessionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SessionServiceTestSuite))
}

func (s *SessionServiceTestSuite) createSession() *models.Session {
	out, err := s.service.CreateSession(context.Background(), &CreateSessionInput{
		Creator: "alice",
	})
	s.Require().NoError(err)
	return out.Session
}

func (s *SessionServiceTestSuite) TestCreateSession() {
	out, err := s.service.CreateSession(context.Background(), &CreateSessionInput{
		Creator: "alice",
	})
	s.Require().NoError(err)

	s.Equal("test-session-id", out.SessionID)
	s.Equal("alice", out.Session.Creator)
	s.Equal([]string{"alice"}, out.Session.Members)
	s.Equal(map[string]bool{"alice": false}, out.Session.Readiness)
	s.False(out.Session.Active)
	s.True(out.Session.CreatedAt.Equal(s.testNow))
}

func (s *SessionServiceTestSuite) TestCreateSessionMissingCreator() {
	_, err := s.service.CreateSession(context.Background(), &CreateSessionInput{})
	s.Require().ErrorIs(err, ErrMissingUsername)
}

func (s *SessionServiceTestSuite) TestGetSessionByCreator() {
	s.createSession()

	out, err := s.service.GetSession(context.Background(), &GetSessionInput{
		Creator: "alice",
	})
	s.Require().NoError(err)
	s.Equal("test-session-id", out.Session.ID)

	_, err = s.service.GetSession(context.Background(), &GetSessionInput{
		SessionID: "missing",
	})
	s.Require().ErrorIs(err, ErrSessionNotFound)
}

func (s *SessionServiceTestSuite) TestJoinKeepsMembersAndReadinessAligned() {
	s.createSession()

	out, err := s.service.Join(context.Background(), &JoinInput{
		SessionID: "test-session-id",
		Username:  "bob",
	})
	s.Require().NoError(err)

	s.Equal([]string{"alice", "bob"}, out.Session.Members)
	// Every member has a readiness entry, and no entry lacks a member
	s.Len(out.Session.Readiness, len(out.Session.Members))
	for _, m := range out.Session.Members {
		_, ok := out.Session.Readiness[m]
		s.True(ok, "member %s missing readiness entry", m)
	}
	s.False(out.Session.Readiness["bob"])
}

func (s *SessionServiceTestSuite) TestJoinTwiceIsNoOp() {
	s.createSession()

	_, err := s.service.Join(context.Background(), &JoinInput{
		SessionID: "test-session-id",
		Username:  "bob",
	})
	s.Require().NoError(err)

	// Second join must not duplicate the member or reset readiness
	_, err = s.service.SetReady(context.Background(), &SetReadyInput{
		SessionID: "test-session-id",
		Username:  "bob",
		Ready:     true,
	})
	s.Require().NoError(err)

	out, err := s.service.Join(context.Background(), &JoinInput{
		SessionID: "test-session-id",
		Username:  "bob",
	})
	s.Require().NoError(err)
	s.Equal([]string{"alice", "bob"}, out.Session.Members)
	s.True(out.Session.Readiness["bob"])
}

func (s *SessionServiceTestSuite) TestJoinByCreatorLookup() {
	s.createSession()

	out, err := s.service.Join(context.Background(), &JoinInput{
		Creator:  "alice",
		Username: "bob",
	})
	s.Require().NoError(err)
	s.Equal("test-session-id", out.SessionID)
}

func (s *SessionServiceTestSuite) TestSetReadyAutoJoins() {
	s.createSession()

	out, err := s.service.SetReady(context.Background(), &SetReadyInput{
		SessionID: "test-session-id",
		Username:  "carol",
		Ready:     true,
	})
	s.Require().NoError(err)

	s.Contains(out.Session.Members, "carol")
	s.True(out.Session.Readiness["carol"])
}

func (s *SessionServiceTestSuite) TestSetReadyToggle() {
	s.createSession()

	out, err := s.service.SetReady(context.Background(), &SetReadyInput{
		SessionID: "test-session-id",
		Username:  "alice",
		Ready:     true,
	})
	s.Require().NoError(err)
	s.True(out.Session.Readiness["alice"])

	out, err = s.service.SetReady(context.Background(), &SetReadyInput{
		SessionID: "test-session-id",
		Username:  "alice",
		Ready:     false,
	})
	s.Require().NoError(err)
	s.False(out.Session.Readiness["alice"])
}

func (s *SessionServiceTestSuite) TestLeaveRemovesMember() {
	s.createSession()
	_, err := s.service.Join(context.Background(), &JoinInput{
		SessionID: "test-session-id",
		Username:  "bob",
	})
	s.Require().NoError(err)

	out, err := s.service.Leave(context.Background(), &LeaveInput{
		SessionID: "test-session-id",
		Username:  "bob",
	})
	s.Require().NoError(err)

	s.False(out.Deleted)
	s.Equal([]string{"alice"}, out.Session.Members)
	_, ok := out.Session.Readiness["bob"]
	s.False(ok)
}

func (s *SessionServiceTestSuite) TestCreatorLeaveDeletesSession() {
	s.createSession()
	_, err := s.service.Join(context.Background(), &JoinInput{
		SessionID: "test-session-id",
		Username:  "bob",
	})
	s.Require().NoError(err)

	out, err := s.service.Leave(context.Background(), &LeaveInput{
		SessionID: "test-session-id",
		Username:  "alice",
	})
	s.Require().NoError(err)
	s.True(out.Deleted)

	_, err = s.service.GetSession(context.Background(), &GetSessionInput{
		SessionID: "test-session-id",
	})
	s.Require().ErrorIs(err, ErrSessionNotFound)
}

func (s *SessionServiceTestSuite) TestActionsResolveByCreator() {
	s.createSession()

	// A client that only knows the admin can drive every action
	_, err := s.service.Join(context.Background(), &JoinInput{
		Creator:  "alice",
		Username: "bob",
	})
	s.Require().NoError(err)

	_, err = s.service.ConfigureShape(context.Background(), &ConfigureShapeInput{
		Creator:      "alice",
		Username:     "alice",
		TemplateID:   "square",
		Center:       &models.GeoPoint{Latitude: 51.5, Longitude: -0.12},
		RadiusMeters: 200,
	})
	s.Require().NoError(err)

	_, err = s.service.ConfigureDefaultCenter(context.Background(), &ConfigureDefaultCenterInput{
		Creator:  "alice",
		Username: "alice",
		Center:   models.GeoPoint{Latitude: 48.85, Longitude: 2.35},
	})
	s.Require().NoError(err)

	out, err := s.service.Leave(context.Background(), &LeaveInput{
		Creator:  "alice",
		Username: "bob",
	})
	s.Require().NoError(err)
	s.False(out.Deleted)
	s.Equal([]string{"alice"}, out.Session.Members)
	s.Require().NotNil(out.Session.ShapeConfig)
	s.Require().NotNil(out.Session.DefaultCenter)
}

func (s *SessionServiceTestSuite) TestLeaveWithoutSessionOrCreator() {
	s.createSession()

	_, err := s.service.Leave(context.Background(), &LeaveInput{
		Username: "bob",
	})
	s.Require().ErrorIs(err, ErrMissingSessionID)
}

func (s *SessionServiceTestSuite) TestLeaveNonMember() {
	s.createSession()

	_, err := s.service.Leave(context.Background(), &LeaveInput{
		SessionID: "test-session-id",
		Username:  "mallory",
	})
	s.Require().ErrorIs(err, ErrNotMember)
}

func (s *SessionServiceTestSuite) TestConfigureShapeFromTemplate() {
	s.createSession()

	out, err := s.service.ConfigureShape(context.Background(), &ConfigureShapeInput{
		SessionID:    "test-session-id",
		Username:     "alice",
		TemplateID:   "square",
		Center:       &models.GeoPoint{Latitude: 51.5, Longitude: -0.12},
		RadiusMeters: 200,
		ZoomLevel:    16,
	})
	s.Require().NoError(err)

	s.Equal("square", out.ShapeConfig.TemplateID)
	s.Len(out.ShapeConfig.Vertices, 4)
	s.Equal(200.0, out.ShapeConfig.RadiusMeters)

	// The stored session carries the same shape
	got, err := s.service.GetSession(context.Background(), &GetSessionInput{
		SessionID: "test-session-id",
	})
	s.Require().NoError(err)
	s.Require().NotNil(got.Session.ShapeConfig)
	s.Equal(out.ShapeConfig.Vertices, got.Session.ShapeConfig.Vertices)
}

func (s *SessionServiceTestSuite) TestConfigureShapeNonAdmin() {
	s.createSession()
	_, err := s.service.Join(context.Background(), &JoinInput{
		SessionID: "test-session-id",
		Username:  "bob",
	})
	s.Require().NoError(err)

	_, err = s.service.ConfigureShape(context.Background(), &ConfigureShapeInput{
		SessionID:    "test-session-id",
		Username:     "bob",
		TemplateID:   "square",
		Center:       &models.GeoPoint{Latitude: 51.5, Longitude: -0.12},
		RadiusMeters: 200,
	})
	s.Require().ErrorIs(err, ErrNotAdmin)
}

func (s *SessionServiceTestSuite) TestConfigureShapeUnknownTemplate() {
	s.createSession()

	_, err := s.service.ConfigureShape(context.Background(), &ConfigureShapeInput{
		SessionID:    "test-session-id",
		Username:     "alice",
		TemplateID:   "hexagon",
		Center:       &models.GeoPoint{Latitude: 51.5, Longitude: -0.12},
		RadiusMeters: 200,
	})
	s.Require().ErrorIs(err, ErrTemplateNotFound)
}

func (s *SessionServiceTestSuite) TestConfigureShapeFailureKeepsPrevious() {
	s.createSession()

	_, err := s.service.ConfigureShape(context.Background(), &ConfigureShapeInput{
		SessionID:    "test-session-id",
		Username:     "alice",
		TemplateID:   "square",
		Center:       &models.GeoPoint{Latitude: 51.5, Longitude: -0.12},
		RadiusMeters: 200,
	})
	s.Require().NoError(err)

	// Invalid radius must not disturb the stored shape
	_, err = s.service.ConfigureShape(context.Background(), &ConfigureShapeInput{
		SessionID:    "test-session-id",
		Username:     "alice",
		TemplateID:   "square",
		Center:       &models.GeoPoint{Latitude: 51.5, Longitude: -0.12},
		RadiusMeters: -1,
	})
	s.Require().ErrorIs(err, ErrInvalidShape)

	got, err := s.service.GetSession(context.Background(), &GetSessionInput{
		SessionID: "test-session-id",
	})
	s.Require().NoError(err)
	s.Require().NotNil(got.Session.ShapeConfig)
	s.Equal(200.0, got.Session.ShapeConfig.RadiusMeters)
}

func (s *SessionServiceTestSuite) TestConfigureShapeFreeFormPolygon() {
	s.createSession()

	vertices := []models.GeoPoint{
		{Latitude: 51.50, Longitude: -0.12},
		{Latitude: 51.51, Longitude: -0.12},
		{Latitude: 51.51, Longitude: -0.11},
	}
	out, err := s.service.ConfigureShape(context.Background(), &ConfigureShapeInput{
		SessionID:  "test-session-id",
		Username:   "alice",
		TemplateID: models.TemplateIDPolygon,
		Vertices:   vertices,
	})
	s.Require().NoError(err)

	// Vertices pass through untouched, center falls back to the centroid
	s.Equal(vertices, out.ShapeConfig.Vertices)
	s.InDelta(51.50666, out.ShapeConfig.Center.Latitude, 1e-4)
	s.InDelta(-0.11666, out.ShapeConfig.Center.Longitude, 1e-4)
}

func (s *SessionServiceTestSuite) TestConfigureShapePolygonTooFewVertices() {
	s.createSession()

	_, err := s.service.ConfigureShape(context.Background(), &ConfigureShapeInput{
		SessionID:  "test-session-id",
		Username:   "alice",
		TemplateID: models.TemplateIDPolygon,
		Vertices: []models.GeoPoint{
			{Latitude: 51.50, Longitude: -0.12},
			{Latitude: 51.51, Longitude: -0.12},
		},
	})
	s.Require().ErrorIs(err, ErrInvalidShape)
}

func (s *SessionServiceTestSuite) TestListTemplates() {
	out, err := s.service.ListTemplates(context.Background(), &ListTemplatesInput{})
	s.Require().NoError(err)
	s.Require().Len(out.Templates, 5)

	// Sorted by ID for a stable picker order
	ids := make([]string, 0, len(out.Templates))
	for _, tpl := range out.Templates {
		ids = append(ids, tpl.ID)
	}
	s.Equal([]string{"circle", "polygon", "square", "star", "triangle"}, ids)
}

func (s *SessionServiceTestSuite) TestConfigureDefaultCenter() {
	s.createSession()

	_, err := s.service.ConfigureDefaultCenter(context.Background(), &ConfigureDefaultCenterInput{
		SessionID: "test-session-id",
		Username:  "alice",
		Center:    models.GeoPoint{Latitude: 48.85, Longitude: 2.35},
	})
	s.Require().NoError(err)

	got, err := s.service.GetSession(context.Background(), &GetSessionInput{
		SessionID: "test-session-id",
	})
	s.Require().NoError(err)
	s.Require().NotNil(got.Session.DefaultCenter)
	s.Equal(48.85, got.Session.DefaultCenter.Latitude)
}

func (s *SessionServiceTestSuite) TestActivateAndDeactivate() {
	s.createSession()
	_, err := s.service.Join(context.Background(), &JoinInput{
		SessionID: "test-session-id",
		Username:  "bob",
	})
	s.Require().NoError(err)

	roles := map[string]models.Role{
		"alice": models.RolePainter,
		"bob":   models.RoleBrush,
	}
	out, err := s.service.Activate(context.Background(), &ActivateInput{
		SessionID: "test-session-id",
		GameID:    "test-game-id",
		Roles:     roles,
		Painter:   "alice",
	})
	s.Require().NoError(err)
	s.True(out.Session.Active)
	s.Equal("test-game-id", out.Session.CurrentGameID)
	s.Equal("alice", out.Session.Painter)

	// A second activation is a conflict
	_, err = s.service.Activate(context.Background(), &ActivateInput{
		SessionID: "test-session-id",
		GameID:    "another-game",
		Roles:     roles,
		Painter:   "alice",
	})
	s.Require().ErrorIs(err, ErrSessionActive)

	// Lobby mutations are rejected while a game is running
	_, err = s.service.Join(context.Background(), &JoinInput{
		SessionID: "test-session-id",
		Username:  "carol",
	})
	s.Require().ErrorIs(err, ErrSessionActive)

	down, err := s.service.Deactivate(context.Background(), &DeactivateInput{
		SessionID: "test-session-id",
	})
	s.Require().NoError(err)
	s.False(down.Session.Active)
	s.Empty(down.Session.CurrentGameID)
	s.Nil(down.Session.Roles)
	s.Empty(down.Session.Painter)

	// Deactivating again is a harmless no-op
	_, err = s.service.Deactivate(context.Background(), &DeactivateInput{
		SessionID: "test-session-id",
	})
	s.Require().NoError(err)
}
