package models

import (
	"time"
)

// PlayerScore is one participant's line in a score snapshot
type PlayerScore struct {
	// Username of the participant
	Username string `json:"username"`

	// Role the participant held during the game
	Role Role `json:"role"`

	// Accuracy is the participant's adjusted accuracy, Brush players only
	Accuracy *float64 `json:"accuracy"`
}

// ScoreSnapshot is the immutable post-game record for one completed game.
// It is written once at game end and never mutated; retried end-game calls
// upsert the same row.
type ScoreSnapshot struct {
	// GameID keys the snapshot, one row per game
	GameID string `json:"gameId"`

	// SessionID is the session the game was played in
	SessionID string `json:"sessionId"`

	// TimeCompleted is when the game ended
	TimeCompleted time.Time `json:"timeCompleted"`

	// DurationSec is how long the game ran, clamped to >= 0
	DurationSec int64 `json:"durationSec"`

	// FinalScore is results.team.points, nil when the payload lacked it
	FinalScore *int64 `json:"finalScore,omitempty"`

	// TotalAccuracy is results.team.adjustedPct, nil when absent
	TotalAccuracy *float64 `json:"totalAccuracy,omitempty"`

	// Players lists each participant's role and accuracy
	Players []PlayerScore `json:"players"`

	// Shape is the session's shape config copied at end time, so replay
	// rendering does not depend on the session still existing
	Shape *ShapeConfig `json:"shape,omitempty"`

	// Trails holds the compacted per-participant drawing trails
	Trails map[string][]GeoPoint `json:"trails,omitempty"`
}

// HasDrawing reports whether any trail points survived compaction
func (s *ScoreSnapshot) HasDrawing() bool {
	for _, pts := range s.Trails {
		if len(pts) > 0 {
			return true
		}
	}
	return false
}
