package port

// Client is one live duplex channel, bound to a single room for its whole
// lifetime. All members are behaviorally identical at the relay layer.
type Client interface {
	ID() string

	// Send queues a payload for delivery. It must not block on a slow peer;
	// a non-nil error means this client's channel is broken.
	Send(payload []byte) error

	// Close tears down the channel. Safe to call more than once.
	Close() error
}

// ConnectionRegistry tracks which live clients belong to which room.
// Implementations must be safe for concurrent use.
type ConnectionRegistry interface {
	Register(roomID string, c Client)

	// Unregister reports whether the client was actually removed; removing
	// a non-member is an idempotent no-op returning false, so disconnect
	// races observe at most one removal. The room entry disappears when
	// its last member leaves.
	Unregister(roomID string, c Client) bool

	// Members returns a point-in-time snapshot of the room's clients.
	Members(roomID string) []Client
}
