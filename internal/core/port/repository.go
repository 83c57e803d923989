package port

import (
	"context"

	"github.com/huddle-rtc/huddle/internal/core/domain"
)

// RoomRepository is the durable authority for room records.
type RoomRepository interface {
	// Save persists a new room atomically. A unique-constraint violation on
	// the room id or invitation token is reported as domain.ErrDuplicateKey;
	// any other failure as a *domain.StorageError.
	Save(ctx context.Context, room *domain.Room) error

	// FindByID returns domain.ErrRoomNotFound when the id is unknown.
	FindByID(ctx context.Context, id string) (*domain.Room, error)

	// FindByInvitationToken returns domain.ErrRoomNotFound when the token
	// is unknown.
	FindByInvitationToken(ctx context.Context, token string) (*domain.Room, error)

	ListByOwner(ctx context.Context, ownerID string) ([]domain.Room, error)
}

// UserRepository stores local mirrors of identity-provider subjects.
type UserRepository interface {
	// FindBySubject returns domain.ErrUserNotFound when no record exists.
	FindBySubject(ctx context.Context, subject string) (*domain.User, error)

	// Save upserts the record keyed by subject.
	Save(ctx context.Context, user *domain.User) error
}
