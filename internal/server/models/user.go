package models

import "time"

// User is a registered account. PasswordHash is a bcrypt hash and must never
// be serialized to clients.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
