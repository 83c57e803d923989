package domain

// Event is the only message shape the relay synthesizes itself. Everything
// else on the wire is an opaque signaling payload passed through unchanged.
type Event struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func UserLeftEvent() Event {
	return Event{Type: "user-left", Message: "A participant has left the call"}
}
