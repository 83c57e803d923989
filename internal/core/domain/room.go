package domain

import "time"

// Room is a credentialed call session. ID and InvitationToken are globally
// unique and never reused, even after the room ends.
type Room struct {
	ID              string
	Title           string
	Password        string
	InvitationToken string
	OwnerID         string
	Active          bool
	CreatedAt       time.Time
}

// User mirrors the identity provider's subject in local storage so room
// ownership and join events can be attributed.
type User struct {
	Subject   string
	Email     string
	FirstName string
	LastName  string
}

// JoinApproval is the successful outcome of a join authorization.
type JoinApproval struct {
	RoomID   string
	Title    string
	JoinedAs string
}
