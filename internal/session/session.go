package session

import "errors"

// Roles carried by a session profile.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

var (
	// ErrInvalidCredential indicates a login attempt with a blank
	// identifier or secret.
	ErrInvalidCredential = errors.New("session: invalid credential")

	// ErrInvalidToken indicates the bearer token failed validation.
	ErrInvalidToken = errors.New("session: invalid token")
)

// Session is the authenticated-identity record governing access to
// protected surfaces. It exists exactly while a valid profile and token
// pair is present in the durable store.
type Session struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`

	// Token is the opaque bearer credential. Never serialized with the
	// profile record; it lives under its own storage key.
	Token string `json:"-"`
}
