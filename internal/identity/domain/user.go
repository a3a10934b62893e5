package domain

import (
	"errors"
	"time"
)

const (
	UserTypeOwner   = "owner"
	UserTypeStudent = "student"
)

var (
	// ErrUserNotFound indicates that no user exists for the given id or username.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameTaken indicates a registration attempt with an existing username.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrInvalidCredentials indicates a login with an unknown username or wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized indicates a missing, malformed or expired token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidInput indicates missing or invalid registration fields.
	ErrInvalidInput = errors.New("invalid input data")
)

// User is an account record. PasswordHash is the bcrypt digest of the raw
// secret and never leaves the service. Email is optional and only used for
// notifications.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	UserType     string
	Email        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsValidUserType reports whether t is one of the supported roles.
func IsValidUserType(t string) bool {
	return t == UserTypeOwner || t == UserTypeStudent
}
