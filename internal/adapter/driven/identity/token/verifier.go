package token

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/huddle-rtc/huddle/internal/core/domain"
	"github.com/huddle-rtc/huddle/internal/core/port"
	"github.com/rs/zerolog/log"
)

type claims struct {
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	jwt.RegisteredClaims
}

// Verifier checks HS256 bearer credentials issued by the identity
// provider. Every failure mode collapses to domain.ErrUnauthorized; the
// underlying cause is logged, never returned.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

func (v *Verifier) Verify(ctx context.Context, credential string) (port.Identity, error) {
	var c claims
	tok, err := jwt.ParseWithClaims(credential, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	})
	if err != nil || !tok.Valid {
		log.Debug().Err(err).Msg("credential verification failed")
		return port.Identity{}, domain.ErrUnauthorized
	}
	if c.Subject == "" {
		return port.Identity{}, domain.ErrUnauthorized
	}
	return port.Identity{
		Subject:    c.Subject,
		Email:      c.Email,
		GivenName:  c.GivenName,
		FamilyName: c.FamilyName,
	}, nil
}
