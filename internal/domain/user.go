package domain

import "time"

// User represents an account of the application being bootstrapped.
// PasswordHash holds a salted bcrypt hash, never the plaintext.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	RoleID       int64
	CreatedAt    time.Time
}
