package models

import (
	"time"
)

// Location is a reported position with its client timestamp
type Location struct {
	// Latitude in degrees
	Latitude float64 `json:"latitude"`

	// Longitude in degrees
	Longitude float64 `json:"longitude"`

	// TimestampMs is the client-reported sample time in Unix milliseconds
	TimestampMs int64 `json:"timestampMs"`
}

// DistanceRecord tracks traveled distance for one (game, participant) pair
type DistanceRecord struct {
	// GameID is the game this record belongs to
	GameID string `json:"gameId"`

	// Username is the participant this record belongs to
	Username string `json:"username"`

	// LastLocation is the most recently accepted position report
	LastLocation Location `json:"lastLocation"`

	// TotalDistanceMeters only grows, and only by increments above the jitter floor
	TotalDistanceMeters float64 `json:"totalDistanceMeters"`

	// Sequence increases by one per accepted report, first write is 0
	Sequence int64 `json:"sequence"`

	// LastUpdated is when the record was last written
	LastUpdated time.Time `json:"lastUpdated"`
}
