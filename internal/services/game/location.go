package game

import (
	"context"
	"errors"

	"github.com/KirkDiggler/geodraw/internal/geo"
	"github.com/KirkDiggler/geodraw/internal/models"
	distanceRepo "github.com/KirkDiggler/geodraw/internal/repositories/distance"
	gameRepo "github.com/KirkDiggler/geodraw/internal/repositories/game"
	"github.com/KirkDiggler/geodraw/internal/services/realtime"
)

// RecordLocation folds one position report into the participant's
// traveled-distance record. Movement below the jitter floor refreshes the
// last known position and sequence but not the total.
//
// Reports for one (game, participant) key are assumed to come from a
// single steadily-polling sender in roughly chronological order; there is
// no reordering or deduplication, so duplicate or out-of-order reports
// change the recorded total.
func (s *service) RecordLocation(ctx context.Context, input *RecordLocationInput) (*RecordLocationOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, ErrMissingGameID
	}
	if input.Username == "" {
		return nil, ErrMissingUsername
	}
	if !geo.ValidLocation(input.Latitude, input.Longitude) {
		return nil, ErrInvalidLocation
	}

	game, err := s.gameRepo.GetGame(ctx, &gameRepo.GetGameInput{GameID: input.GameID})
	if err != nil {
		if errors.Is(err, gameRepo.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	location := models.Location{
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		TimestampMs: input.TimestampMs,
	}

	record, err := s.distanceRepo.GetRecord(ctx, &distanceRepo.GetRecordInput{
		GameID:   input.GameID,
		Username: input.Username,
	})
	if err != nil {
		if !errors.Is(err, distanceRepo.ErrRecordNotFound) {
			return nil, err
		}
		// First report for this key
		record = &models.DistanceRecord{
			GameID:   input.GameID,
			Username: input.Username,
			Sequence: -1,
		}
	} else {
		moved := geo.Haversine(
			models.GeoPoint{Latitude: record.LastLocation.Latitude, Longitude: record.LastLocation.Longitude},
			models.GeoPoint{Latitude: input.Latitude, Longitude: input.Longitude},
		)
		if moved >= s.jitterFloorMeters {
			record.TotalDistanceMeters += moved
		}
	}

	record.LastLocation = location
	record.Sequence++
	record.LastUpdated = s.clock.Now()

	if err := s.distanceRepo.SaveRecord(ctx, &distanceRepo.SaveRecordInput{
		Record: record,
	}); err != nil {
		// The read was consistent with the prior write, so the caller can
		// simply retry with its next sample.
		return nil, err
	}

	s.publish(ctx, game.SessionID, realtime.EventReceiveLocation, map[string]any{
		"gameId":        input.GameID,
		"username":      input.Username,
		"latitude":      input.Latitude,
		"longitude":     input.Longitude,
		"timestampMs":   input.TimestampMs,
		"totalDistance": record.TotalDistanceMeters,
	})

	return &RecordLocationOutput{
		TotalDistanceMeters: record.TotalDistanceMeters,
		Sequence:            record.Sequence,
	}, nil
}

// GetLocations returns the latest position and total distance for every
// participant who has reported in a game
func (s *service) GetLocations(ctx context.Context, input *GetLocationsInput) (*GetLocationsOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, ErrMissingGameID
	}

	records, err := s.distanceRepo.GetRecordsByGame(ctx, &distanceRepo.GetRecordsByGameInput{
		GameID: input.GameID,
	})
	if err != nil {
		return nil, err
	}

	locations := make([]ParticipantLocation, 0, len(records))
	for _, record := range records {
		locations = append(locations, ParticipantLocation{
			Username:            record.Username,
			Latitude:            record.LastLocation.Latitude,
			Longitude:           record.LastLocation.Longitude,
			TimestampMs:         record.LastLocation.TimestampMs,
			TotalDistanceMeters: record.TotalDistanceMeters,
		})
	}

	return &GetLocationsOutput{Locations: locations}, nil
}
