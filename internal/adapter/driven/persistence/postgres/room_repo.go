package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/huddle-rtc/huddle/internal/core/domain"
	"gorm.io/gorm"
)

type roomRecord struct {
	ID              uint      `gorm:"primaryKey"`
	RoomID          string    `gorm:"uniqueIndex;size:11;not null"`
	Title           string    `gorm:"size:255;not null"`
	Password        string    `gorm:"size:6;not null"`
	InvitationToken string    `gorm:"uniqueIndex;size:64;not null"`
	OwnerID         string    `gorm:"index;size:128;not null"`
	Active          bool      `gorm:"not null;default:true"`
	CreatedAt       time.Time `gorm:"not null"`
}

func (roomRecord) TableName() string { return "rooms" }

// RoomRepository implements port.RoomRepository on gorm/Postgres. The
// unique indexes on room_id and invitation_token back the collision-retry
// contract of room creation.
type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) Save(ctx context.Context, room *domain.Room) error {
	rec := roomRecord{
		RoomID:          room.ID,
		Title:           room.Title,
		Password:        room.Password,
		InvitationToken: room.InvitationToken,
		OwnerID:         room.OwnerID,
		Active:          room.Active,
		CreatedAt:       room.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateKey
		}
		return &domain.StorageError{Op: "save room", Err: err}
	}
	return nil
}

func (r *RoomRepository) FindByID(ctx context.Context, id string) (*domain.Room, error) {
	return r.findOne(ctx, "room_id = ?", id)
}

func (r *RoomRepository) FindByInvitationToken(ctx context.Context, token string) (*domain.Room, error) {
	return r.findOne(ctx, "invitation_token = ?", token)
}

func (r *RoomRepository) findOne(ctx context.Context, query string, arg string) (*domain.Room, error) {
	var rec roomRecord
	if err := r.db.WithContext(ctx).Where(query, arg).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRoomNotFound
		}
		return nil, &domain.StorageError{Op: "find room", Err: err}
	}
	return toDomain(&rec), nil
}

func (r *RoomRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Room, error) {
	var recs []roomRecord
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id").Find(&recs).Error; err != nil {
		return nil, &domain.StorageError{Op: "list rooms", Err: err}
	}
	out := make([]domain.Room, 0, len(recs))
	for i := range recs {
		out = append(out, *toDomain(&recs[i]))
	}
	return out, nil
}

func toDomain(rec *roomRecord) *domain.Room {
	return &domain.Room{
		ID:              rec.RoomID,
		Title:           rec.Title,
		Password:        rec.Password,
		InvitationToken: rec.InvitationToken,
		OwnerID:         rec.OwnerID,
		Active:          rec.Active,
		CreatedAt:       rec.CreatedAt,
	}
}
