package ws

import (
	"sync"

	"github.com/huddle-rtc/huddle/internal/core/port"
	"github.com/huddle-rtc/huddle/internal/metrics"
)

// Registry implements port.ConnectionRegistry: a process-wide mapping from
// room id to that room's live clients. Membership lifetime is process
// scoped; nothing here survives a restart.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]map[port.Client]struct{}
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]map[port.Client]struct{})}
}

func (r *Registry) Register(roomID string, c port.Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.rooms[roomID]
	if !ok {
		members = make(map[port.Client]struct{})
		r.rooms[roomID] = members
	}
	if _, dup := members[c]; dup {
		return
	}
	members[c] = struct{}{}
	metrics.Connections.Inc()
}

// Unregister removes the client and drops the room entry once it is empty.
// It reports whether the client was actually a member: removing an unknown
// client is a no-op returning false, so concurrent disconnect observers
// see exactly one successful removal.
func (r *Registry) Unregister(roomID string, c port.Client) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.rooms[roomID]
	if !ok {
		return false
	}
	if _, present := members[c]; !present {
		return false
	}
	delete(members, c)
	metrics.Connections.Dec()
	if len(members) == 0 {
		delete(r.rooms, roomID)
	}
	return true
}

// Members returns a snapshot; callers iterate it without holding any lock,
// so sends to slow peers never block unrelated rooms.
func (r *Registry) Members(roomID string) []port.Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := r.rooms[roomID]
	out := make([]port.Client, 0, len(members))
	for c := range members {
		out = append(out, c)
	}
	return out
}

// Online reports the current member count of a room.
func (r *Registry) Online(roomID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms[roomID])
}
