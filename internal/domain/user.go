package domain

import "time"

// User represents an authenticated user of the system. Usernames are
// email-shaped and unique. PasswordHash is owned by the identity store
// and never serialized out.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
