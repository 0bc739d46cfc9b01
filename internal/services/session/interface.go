package session

import "context"

// Service owns the lobby lifecycle: membership, readiness, admin-only
// shape configuration, and the Lobby/Active transitions driven by the game
// lifecycle.
type Service interface {
	// CreateSession creates a lobby with the creator as its first member
	CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error)

	// GetSession retrieves a session by ID or by creator username
	GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error)

	// Join adds a member to a lobby; joining twice is a no-op
	Join(ctx context.Context, input *JoinInput) (*JoinOutput, error)

	// SetReady flips a member's ready flag, joining them first if needed
	SetReady(ctx context.Context, input *SetReadyInput) (*SetReadyOutput, error)

	// Leave removes a member. The creator leaving tears the whole session
	// down; the last member leaving deletes it too.
	Leave(ctx context.Context, input *LeaveInput) (*LeaveOutput, error)

	// ConfigureShape resolves a template into concrete geography and
	// stores it on the session. Admin-only, lobby-only.
	ConfigureShape(ctx context.Context, input *ConfigureShapeInput) (*ConfigureShapeOutput, error)

	// ListTemplates returns the shape catalog that feeds the admin's
	// template picker, sorted by ID
	ListTemplates(ctx context.Context, input *ListTemplatesInput) (*ListTemplatesOutput, error)

	// ConfigureDefaultCenter stores a map-centering hint. Admin-only,
	// lobby-only.
	ConfigureDefaultCenter(ctx context.Context, input *ConfigureDefaultCenterInput) (*ConfigureDefaultCenterOutput, error)

	// Activate moves Lobby -> Active, mirroring the game's roles onto the
	// session. Fails with ErrSessionActive when a game is already running.
	Activate(ctx context.Context, input *ActivateInput) (*ActivateOutput, error)

	// Deactivate moves the session back to the lobby, clearing the game
	// mirror fields. Idempotent: deactivating a lobby session is a no-op,
	// so an end-game retry can never strand a session.
	Deactivate(ctx context.Context, input *DeactivateInput) (*DeactivateOutput, error)
}
