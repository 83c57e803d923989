package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/huddle-rtc/huddle/internal/core/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userRecord struct {
	ID        uint   `gorm:"primaryKey"`
	Subject   string `gorm:"uniqueIndex;size:128;not null"`
	Email     string `gorm:"size:255;not null"`
	FirstName string `gorm:"size:128"`
	LastName  string `gorm:"size:128"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (userRecord) TableName() string { return "users" }

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindBySubject(ctx context.Context, subject string) (*domain.User, error) {
	var rec userRecord
	if err := r.db.WithContext(ctx).Where("subject = ?", subject).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, &domain.StorageError{Op: "find user", Err: err}
	}
	return &domain.User{
		Subject:   rec.Subject,
		Email:     rec.Email,
		FirstName: rec.FirstName,
		LastName:  rec.LastName,
	}, nil
}

// Save upserts on the subject key so concurrent first requests from the
// same caller cannot race into a duplicate error.
func (r *UserRepository) Save(ctx context.Context, user *domain.User) error {
	rec := userRecord{
		Subject:   user.Subject,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "subject"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "first_name", "last_name", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return &domain.StorageError{Op: "save user", Err: err}
	}
	return nil
}
