package models

import (
	"time"
)

// ShapeConfig is the target geometry configured for a session by its admin
type ShapeConfig struct {
	// TemplateID identifies the shape template this config was built from
	TemplateID string `json:"templateId"`

	// Center is the geographic center the template was scaled around
	Center GeoPoint `json:"center"`

	// RadiusMeters is the scaling radius applied to the template
	RadiusMeters float64 `json:"radiusMeters"`

	// ZoomLevel is a map-zoom hint for clients rendering the shape
	ZoomLevel float64 `json:"zoomLevel,omitempty"`

	// Vertices are the resolved geographic points of the target shape
	Vertices []GeoPoint `json:"vertices"`
}

// Session represents one lobby/round container
type Session struct {
	// ID is the unique identifier for this session
	ID string `json:"id"`

	// Creator is the username of the sole admin (first member)
	Creator string `json:"creator"`

	// Members are the joined usernames in join order, no duplicates
	Members []string `json:"members"`

	// Readiness maps each member to their ready flag
	Readiness map[string]bool `json:"readiness"`

	// Active is true while a game is running
	Active bool `json:"active"`

	// CurrentGameID references the active game, empty when in the lobby
	CurrentGameID string `json:"currentGameId,omitempty"`

	// Roles mirrors the active game's role map for quick reads
	Roles map[string]Role `json:"roles,omitempty"`

	// Painter caches the Painter role holder of the active game
	Painter string `json:"painter,omitempty"`

	// ShapeConfig is the admin-configured target shape, nil until configured
	ShapeConfig *ShapeConfig `json:"shapeConfig,omitempty"`

	// DefaultCenter is a map-centering hint for non-admin clients
	DefaultCenter *GeoPoint `json:"defaultCenter,omitempty"`

	// CreatedAt is when the session was created
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is when the session was last written
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasMember reports whether username has joined the session
func (s *Session) HasMember(username string) bool {
	for _, m := range s.Members {
		if m == username {
			return true
		}
	}
	return false
}
