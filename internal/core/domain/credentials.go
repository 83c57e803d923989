package domain

import (
	"crypto/rand"
	"encoding/base64"
	"math/big"
)

const (
	roomIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	passwordDigits = "0123456789"

	invitationTokenBytes = 16
)

// NewRoomID returns a public room identifier: nine random alphanumeric
// characters grouped xxx-xxx-xxx. Uniqueness is enforced by the store,
// not here.
func NewRoomID() string {
	raw := randomString(roomIDAlphabet, 9)
	return raw[0:3] + "-" + raw[3:6] + "-" + raw[6:9]
}

// NewRoomPassword returns a 6-digit numeric password. Short enough to be
// typed by a human, drawn from a CSPRNG so it resists guessing.
func NewRoomPassword() string {
	return randomString(passwordDigits, 6)
}

// NewInvitationToken returns an opaque URL-safe secret used as an alternate
// lookup key for sharing a room.
func NewInvitationToken() string {
	b := make([]byte, invitationTokenBytes)
	if _, err := rand.Read(b); err != nil {
		panic("domain: entropy source unavailable: " + err.Error())
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

// NewRoomCredentials generates a fresh password and invitation token pair
// for a new room. Nothing is cached or reused between calls.
func NewRoomCredentials() (password, token string) {
	return NewRoomPassword(), NewInvitationToken()
}

// randomString draws n characters independently and uniformly from alphabet.
// An entropy failure is fatal: the process cannot keep issuing credentials.
func randomString(alphabet string, n int) string {
	max := big.NewInt(int64(len(alphabet)))
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic("domain: entropy source unavailable: " + err.Error())
		}
		out[i] = alphabet[idx.Int64()]
	}
	return string(out)
}
