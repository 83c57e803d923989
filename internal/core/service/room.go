package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/huddle-rtc/huddle/internal/core/domain"
	"github.com/huddle-rtc/huddle/internal/core/port"
	"github.com/rs/zerolog/log"
)

// maxIDAttempts bounds the id-collision retry loop. Nine alphanumeric
// characters give ~46 bits of id space, so hitting this limit means the
// store is misbehaving, not that the space is exhausted.
const maxIDAttempts = 5

type RoomService struct {
	rooms port.RoomRepository
}

func NewRoomService(rooms port.RoomRepository) *RoomService {
	return &RoomService{rooms: rooms}
}

// Create generates a room id and credentials and persists the full record.
// A duplicate-key rejection from the store triggers regeneration rather
// than failing the caller; exhausting the attempts escalates to a storage
// error.
func (s *RoomService) Create(ctx context.Context, title, ownerID string) (*domain.Room, error) {
	for attempt := 1; attempt <= maxIDAttempts; attempt++ {
		password, token := domain.NewRoomCredentials()
		room := &domain.Room{
			ID:              domain.NewRoomID(),
			Title:           title,
			Password:        password,
			InvitationToken: token,
			OwnerID:         ownerID,
			Active:          true,
			CreatedAt:       time.Now().UTC(),
		}

		err := s.rooms.Save(ctx, room)
		if errors.Is(err, domain.ErrDuplicateKey) {
			log.Warn().Str("room_id", room.ID).Int("attempt", attempt).Msg("room id collision, regenerating")
			continue
		}
		if err != nil {
			return nil, err
		}
		return room, nil
	}
	return nil, &domain.StorageError{
		Op:  "create room",
		Err: fmt.Errorf("no unique room id after %d attempts", maxIDAttempts),
	}
}

// Join authorizes a join attempt. The room must exist, still be active, and
// the supplied password must match exactly. Every room has a password, so
// there is no public-room branch.
func (s *RoomService) Join(ctx context.Context, roomID, password string, who port.Identity) (*domain.JoinApproval, error) {
	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !room.Active {
		return nil, domain.ErrRoomEnded
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(room.Password)) != 1 {
		return nil, domain.ErrInvalidPassword
	}
	return &domain.JoinApproval{
		RoomID:   room.ID,
		Title:    room.Title,
		JoinedAs: who.Email,
	}, nil
}

// InvitationDetails resolves an invitation token to the full room record,
// password included: whoever holds the link is entitled to know how to
// join. An ended room is reported distinctly from an unknown token.
func (s *RoomService) InvitationDetails(ctx context.Context, token string) (*domain.Room, error) {
	room, err := s.rooms.FindByInvitationToken(ctx, token)
	if errors.Is(err, domain.ErrRoomNotFound) {
		return nil, domain.ErrInvitationNotFound
	}
	if err != nil {
		return nil, err
	}
	if !room.Active {
		return nil, domain.ErrRoomEnded
	}
	return room, nil
}

// GetActive looks up a room for the websocket handshake, distinguishing
// unknown from ended.
func (s *RoomService) GetActive(ctx context.Context, roomID string) (*domain.Room, error) {
	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !room.Active {
		return nil, domain.ErrRoomEnded
	}
	return room, nil
}

func (s *RoomService) ListByOwner(ctx context.Context, ownerID string) ([]domain.Room, error) {
	return s.rooms.ListByOwner(ctx, ownerID)
}
