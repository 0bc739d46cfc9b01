package game

import (
	"encoding/json"
	"time"

	"github.com/KirkDiggler/geodraw/internal/geo"
	"github.com/KirkDiggler/geodraw/internal/models"
)

// teamResult is the team block of a results payload
type teamResult struct {
	Points      *int64   `json:"points"`
	AdjustedPct *float64 `json:"adjustedPct"`
	AccuracyPct *float64 `json:"accuracyPct"`
}

// userResult is one per-player accuracy entry of a results payload
type userResult struct {
	Username    string   `json:"username"`
	AdjustedPct *float64 `json:"adjustedPct"`
}

// trailPoint accepts both the long and short coordinate key spellings
type trailPoint struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Lat       *float64 `json:"lat"`
	Lng       *float64 `json:"lng"`
}

// parsedResults holds whatever could be extracted from a results payload.
// Every sub-field is independently optional; a malformed block degrades to
// nil instead of failing the whole parse.
type parsedResults struct {
	Team    *teamResult
	PerUser []userResult
	Trails  map[string][]models.GeoPoint
}

// parseResults pulls the known fields out of the free-form results
// payload, field by field so one bad block cannot poison the rest
func parseResults(raw []byte) *parsedResults {
	out := &parsedResults{}
	if len(raw) == 0 {
		return out
	}

	var envelope struct {
		Team    json.RawMessage `json:"team"`
		PerUser json.RawMessage `json:"perUser"`
		Trails  json.RawMessage `json:"trails"`
		Drawing json.RawMessage `json:"drawing"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return out
	}

	if len(envelope.Team) > 0 {
		var team teamResult
		if err := json.Unmarshal(envelope.Team, &team); err == nil {
			out.Team = &team
		}
	}

	if len(envelope.PerUser) > 0 {
		var perUser []userResult
		if err := json.Unmarshal(envelope.PerUser, &perUser); err == nil {
			out.PerUser = perUser
		}
	}

	// "drawing" is the legacy key for the same trail map
	trailsRaw := envelope.Trails
	if len(trailsRaw) == 0 {
		trailsRaw = envelope.Drawing
	}
	if len(trailsRaw) > 0 {
		var trails map[string][]trailPoint
		if err := json.Unmarshal(trailsRaw, &trails); err == nil {
			out.Trails = normalizeTrails(trails)
		}
	}

	return out
}

// normalizeTrails converts raw trail points to GeoPoints, dropping entries
// with missing or invalid coordinates
func normalizeTrails(trails map[string][]trailPoint) map[string][]models.GeoPoint {
	out := make(map[string][]models.GeoPoint, len(trails))
	for username, pts := range trails {
		if len(pts) == 0 {
			continue
		}
		norm := make([]models.GeoPoint, 0, len(pts))
		for _, p := range pts {
			lat := p.Latitude
			if lat == nil {
				lat = p.Lat
			}
			lng := p.Longitude
			if lng == nil {
				lng = p.Lng
			}
			if lat == nil || lng == nil || !geo.ValidLocation(*lat, *lng) {
				continue
			}
			norm = append(norm, models.GeoPoint{Latitude: *lat, Longitude: *lng})
		}
		if len(norm) > 0 {
			out[username] = norm
		}
	}
	return out
}

// subsample reduces a trail to at most maxPoints by fixed-stride sampling
func subsample(points []models.GeoPoint, maxPoints int) []models.GeoPoint {
	if len(points) <= maxPoints {
		return points
	}
	step := len(points) / maxPoints
	if step < 1 {
		step = 1
	}
	out := make([]models.GeoPoint, 0, maxPoints)
	for i := 0; i < len(points) && len(out) < maxPoints; i += step {
		out = append(out, points[i])
	}
	return out
}

// buildSnapshot derives the immutable score record from the completed
// game, its owning session and the parsed results. The shape config is
// copied so replay rendering never depends on the session outliving the
// game.
func (s *service) buildSnapshot(game *models.Game, session *models.Session, results *parsedResults, completed time.Time) *models.ScoreSnapshot {
	snapshot := &models.ScoreSnapshot{
		GameID:        game.ID,
		SessionID:     session.ID,
		TimeCompleted: completed,
		DurationSec:   durationSec(game.TimeStarted, completed),
	}

	if results.Team != nil {
		snapshot.FinalScore = results.Team.Points
		snapshot.TotalAccuracy = results.Team.AdjustedPct
	}

	// Brush accuracy by username
	brushAcc := make(map[string]*float64, len(results.PerUser))
	for _, u := range results.PerUser {
		if u.Username != "" && u.AdjustedPct != nil {
			brushAcc[u.Username] = u.AdjustedPct
		}
	}

	// One line per player from the game's frozen role map; accuracy is
	// only meaningful for Brush players
	snapshot.Players = make([]models.PlayerScore, 0, len(game.Players))
	for _, username := range game.Players {
		role := game.Roles[username]
		line := models.PlayerScore{Username: username, Role: role}
		if role == models.RoleBrush {
			line.Accuracy = brushAcc[username]
		}
		snapshot.Players = append(snapshot.Players, line)
	}

	if session.ShapeConfig != nil {
		shape := *session.ShapeConfig
		snapshot.Shape = &shape
	}

	// Compact the trails: per-player stride subsampling, then a combined
	// budget. Iteration follows the frozen player order so which trails
	// get dropped when the budget runs out is deterministic.
	if len(results.Trails) > 0 {
		compact := make(map[string][]models.GeoPoint)
		total := 0
		for _, username := range game.Players {
			pts, ok := results.Trails[username]
			if !ok || len(pts) == 0 {
				continue
			}
			if total >= s.trailPointBudget {
				break
			}
			trail := subsample(pts, s.maxTrailPoints)
			if remaining := s.trailPointBudget - total; len(trail) > remaining {
				trail = trail[:remaining]
			}
			compact[username] = trail
			total += len(trail)
		}
		if len(compact) > 0 {
			snapshot.Trails = compact
		}
	}

	return snapshot
}
