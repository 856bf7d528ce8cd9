package models

import "time"

// Session is the single live session persisted on the user row. Login
// replaces it wholesale; logout backdates ExpiresAt without touching the
// token value. There is never more than one per user.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

type User struct {
	ID           int64
	FirstName    string
	LastName     string
	UserName     string
	Email        string
	PasswordHash string
	Session      Session
	CreatedAt    time.Time
}
