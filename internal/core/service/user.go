package service

import (
	"context"
	"errors"
	"strings"

	"github.com/huddle-rtc/huddle/internal/core/domain"
	"github.com/huddle-rtc/huddle/internal/core/port"
	"github.com/rs/zerolog/log"
)

// placeholderDomain marks emails we synthesized because the identity
// provider supplied none. A placeholder may later be upgraded to a real
// address but a real address is never demoted back.
const placeholderDomain = "@users.noreply.local"

type UserService struct {
	users port.UserRepository
}

func NewUserService(users port.UserRepository) *UserService {
	return &UserService{users: users}
}

// Resolve returns the local user record for a verified identity, creating
// it on first contact and reconciling the stored email when the provider
// starts supplying a real one.
func (s *UserService) Resolve(ctx context.Context, id port.Identity) (*domain.User, error) {
	user, err := s.users.FindBySubject(ctx, id.Subject)
	if errors.Is(err, domain.ErrUserNotFound) {
		user = &domain.User{
			Subject:   id.Subject,
			Email:     emailOrPlaceholder(id),
			FirstName: id.GivenName,
			LastName:  id.FamilyName,
		}
		if err := s.users.Save(ctx, user); err != nil {
			return nil, err
		}
		log.Info().Str("subject", id.Subject).Msg("created user record")
		return user, nil
	}
	if err != nil {
		return nil, err
	}

	if id.Email != "" && isPlaceholder(user.Email) {
		user.Email = id.Email
		if err := s.users.Save(ctx, user); err != nil {
			return nil, err
		}
		log.Info().Str("subject", id.Subject).Msg("reconciled placeholder email")
	}
	return user, nil
}

func emailOrPlaceholder(id port.Identity) string {
	if id.Email != "" {
		return id.Email
	}
	return id.Subject + placeholderDomain
}

func isPlaceholder(email string) bool {
	return strings.HasSuffix(email, placeholderDomain)
}
