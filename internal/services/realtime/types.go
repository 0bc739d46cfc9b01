package realtime

import "encoding/json"

// Event names published to session groups
const (
	// EventGameStarted announces a new game with its roles
	EventGameStarted = "gameStarted"

	// EventGameEnded announces that the session is back in the lobby
	EventGameEnded = "gameEnded"

	// EventReceiveLocation relays a participant's position report
	EventReceiveLocation = "receiveLocation"
)

// PublishInput carries one event for a session's group
type PublishInput struct {
	// SessionID is the group to publish to
	SessionID string

	// Event is one of the Event* names
	Event string

	// Payload is the event body, marshalled as-is
	Payload any
}

// Envelope is the wire form of a published event
type Envelope struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload,omitempty"`
}
