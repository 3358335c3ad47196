package model

import (
	"errors"
	"strings"
	"time"
)

// User represents an account in the system. Guest accounts are created on
// guest login and carry no password.
type User struct {
	ID              string    `db:"id" json:"id"`
	Username        string    `db:"username" json:"username"`
	Email           string    `db:"email" json:"email"`
	PasswordHashed  string    `db:"password_hashed" json:"-"`
	IsGuest         bool      `db:"is_guest" json:"is_guest"`
	ProfilePhotoKey *string   `db:"profile_photo_key" json:"profile_photo,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// UserSummary is the public projection of a user returned from friend
// listings and search.
type UserSummary struct {
	ID              string  `db:"id" json:"id"`
	Username        string  `db:"username" json:"username"`
	Email           string  `db:"email" json:"email"`
	ProfilePhotoKey *string `db:"profile_photo_key" json:"profile_photo,omitempty"`
}

// RegisterRequest is the request body for account registration.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned from register/login/guest endpoints.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// Profile photo constants
const (
	ProfilePhotoSize = 400 // normalized square edge in pixels
	ContentTypeJPEG  = "image/jpeg"

	UserSearchLimit = 20
)

// IsImageContentType reports whether the declared content type is an image.
func IsImageContentType(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}

var (
	// ErrUserNotFound is returned when a user cannot be found
	ErrUserNotFound = errors.New("user not found")

	// ErrUserExists is returned when the email or username is already taken
	ErrUserExists = errors.New("user already exists")

	// ErrInvalidCredentials is returned when login credentials are incorrect
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrProfilePhotoNotFound is returned when a user has no profile photo
	ErrProfilePhotoNotFound = errors.New("profile photo not found")
)
