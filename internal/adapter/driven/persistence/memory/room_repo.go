package memory

import (
	"context"
	"sync"

	"github.com/huddle-rtc/huddle/internal/core/domain"
)

// RoomRepository is an in-memory port.RoomRepository used in tests and for
// running the server without a database.
type RoomRepository struct {
	mu      sync.RWMutex
	byID    map[string]domain.Room
	byToken map[string]string // invitation token -> room id
	order   []string

	duplicateSaves int
}

func NewRoomRepository() *RoomRepository {
	return &RoomRepository{
		byID:    make(map[string]domain.Room),
		byToken: make(map[string]string),
	}
}

// FailDuplicates makes the next n Save calls report a duplicate key,
// exercising the id-collision retry path.
func (r *RoomRepository) FailDuplicates(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.duplicateSaves = n
}

func (r *RoomRepository) Save(ctx context.Context, room *domain.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.duplicateSaves > 0 {
		r.duplicateSaves--
		return domain.ErrDuplicateKey
	}
	if _, exists := r.byID[room.ID]; exists {
		return domain.ErrDuplicateKey
	}
	if _, exists := r.byToken[room.InvitationToken]; exists {
		return domain.ErrDuplicateKey
	}
	r.byID[room.ID] = *room
	r.byToken[room.InvitationToken] = room.ID
	r.order = append(r.order, room.ID)
	return nil
}

func (r *RoomRepository) FindByID(ctx context.Context, id string) (*domain.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	return &room, nil
}

func (r *RoomRepository) FindByInvitationToken(ctx context.Context, token string) (*domain.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byToken[token]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	room := r.byID[id]
	return &room, nil
}

func (r *RoomRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Room
	for _, id := range r.order {
		if room := r.byID[id]; room.OwnerID == ownerID {
			out = append(out, room)
		}
	}
	return out, nil
}

// SetActive flips a room's active flag in place. Test helper; no endpoint
// ends a room yet.
func (r *RoomRepository) SetActive(id string, active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if room, ok := r.byID[id]; ok {
		room.Active = active
		r.byID[id] = room
	}
}
