// Package models defines server-side data models persisted in Postgres.
package models

import "time"

// User is a registered account. Passwords are stored as bcrypt hashes.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
