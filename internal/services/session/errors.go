package session

// SessionError is a custom error type for session-related errors
type SessionError string

// Error implements the error interface
func (e SessionError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrSessionNotFound  SessionError = "session not found"
	ErrSessionActive    SessionError = "session already has a game running"
	ErrNotMember        SessionError = "user is not a member of the session"
	ErrNotAdmin         SessionError = "only the session creator may do that"
	ErrTemplateNotFound SessionError = "shape template not found"
	ErrInvalidShape     SessionError = "shape configuration is invalid"
	ErrMissingUsername  SessionError = "username is required"
	ErrMissingSessionID SessionError = "session ID or creator is required"
	ErrNilConfig        SessionError = "config cannot be nil"
	ErrNilSessionRepo   SessionError = "session repository cannot be nil"
	ErrNilTemplateRepo  SessionError = "template repository cannot be nil"
	ErrNilClock         SessionError = "clock cannot be nil"
	ErrNilUUIDGenerator SessionError = "UUID generator cannot be nil"
)
