package port

import "context"

// Identity is a verified caller identity as supplied by the provider.
// Email and the name fields may be empty.
type Identity struct {
	Subject    string
	Email      string
	GivenName  string
	FamilyName string
}

// IdentityVerifier checks a bearer credential. Every verification failure,
// whatever the underlying cause, surfaces as domain.ErrUnauthorized so
// verification internals never leak to callers.
type IdentityVerifier interface {
	Verify(ctx context.Context, credential string) (Identity, error)
}
