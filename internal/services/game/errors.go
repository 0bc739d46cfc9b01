package game

// GameError is a custom error type for game-related errors
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrGameNotFound     GameError = "game not found"
	ErrSessionNotFound  GameError = "session not found"
	ErrSessionActive    GameError = "session already has a game running"
	ErrNotAdmin         GameError = "only the session creator may start a game"
	ErrNoMembers        GameError = "session has no members to start a game with"
	ErrNoGameToEnd      GameError = "session has no game to end"
	ErrInvalidLocation  GameError = "location coordinates are invalid"
	ErrMissingUsername  GameError = "username is required"
	ErrMissingGameID    GameError = "game ID is required"
	ErrMissingSessionID GameError = "session ID is required"
	ErrNilConfig        GameError = "config cannot be nil"
	ErrNilSessionSvc    GameError = "session service cannot be nil"
	ErrNilGameRepo      GameError = "game repository cannot be nil"
	ErrNilDistanceRepo  GameError = "distance repository cannot be nil"
	ErrNilScoreRepo     GameError = "score repository cannot be nil"
	ErrNilClock         GameError = "clock cannot be nil"
	ErrNilUUIDGenerator GameError = "UUID generator cannot be nil"
	ErrNilPicker        GameError = "painter picker cannot be nil"
)
