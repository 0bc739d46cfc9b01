package game

import "context"

// Service owns the game lifecycle: starting a round from a lobby, the
// live-location pipeline while it runs, and the end-of-round scoring
// snapshot.
type Service interface {
	// StartGame freezes the session's membership into a new game, assigns
	// exactly one Painter and flips the session to Active
	StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error)

	// EndGame completes the current (or an explicitly named) game, writes
	// the score snapshot and always returns the session to the lobby
	EndGame(ctx context.Context, input *EndGameInput) (*EndGameOutput, error)

	// RecordLocation folds one position report into the participant's
	// traveled-distance record
	RecordLocation(ctx context.Context, input *RecordLocationInput) (*RecordLocationOutput, error)

	// GetLocations returns the latest position and total distance for
	// every participant who has reported in a game
	GetLocations(ctx context.Context, input *GetLocationsInput) (*GetLocationsOutput, error)

	// GetDrawing returns the persisted score snapshot for a completed game
	GetDrawing(ctx context.Context, input *GetDrawingInput) (*GetDrawingOutput, error)
}
