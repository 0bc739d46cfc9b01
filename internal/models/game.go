package models

import (
	"encoding/json"
	"time"
)

// GameStatus represents the current state of a game
type GameStatus string

const (
	// GameStatusInProgress indicates a game is being played
	GameStatusInProgress GameStatus = "in_progress"

	// GameStatusCompleted indicates a game has been completed
	GameStatusCompleted GameStatus = "completed"
)

// Role identifies what a player does during a game
type Role string

const (
	// RolePainter is the single player who sees the drawing take shape
	RolePainter Role = "Painter"

	// RoleBrush is every other player, walking the target shape
	RoleBrush Role = "Brush"
)

// Game represents one played round, derived from a session at start time
type Game struct {
	// ID is the unique identifier for the game
	ID string `json:"id"`

	// SessionID is the session this game belongs to
	SessionID string `json:"sessionId"`

	// Players is the member set frozen at start time
	Players []string `json:"players"`

	// Roles maps each player to Painter or Brush, exactly one Painter
	Roles map[string]Role `json:"roles"`

	// Status is the current state of the game
	Status GameStatus `json:"status"`

	// TimeStarted is when the game was started
	TimeStarted time.Time `json:"timeStarted"`

	// TimeCompleted is set when the game completes, nil until then
	TimeCompleted *time.Time `json:"timeCompleted,omitempty"`

	// Results is the free-form payload supplied at end time, stored verbatim
	Results json.RawMessage `json:"results,omitempty"`

	// TeamAccuracy is results.team.adjustedPct lifted for quick reads
	TeamAccuracy *float64 `json:"teamAccuracy,omitempty"`

	// TeamF1 is results.team.accuracyPct lifted for quick reads
	TeamF1 *float64 `json:"teamF1,omitempty"`
}

// Painter returns the player holding the Painter role, empty if none
func (g *Game) Painter() string {
	for player, role := range g.Roles {
		if role == RolePainter {
			return player
		}
	}
	return ""
}
