// Package directory defines the managed entity kinds of the admin console:
// system users and clients.
package directory

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"admincore.org/internal/collection"
)

// Roles assignable to system users.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

const minPasswordLength = 6

// General email shape: local part, "@", domain, ".", tld. Not full RFC 5322.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s matches the general email shape.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// User is a system account managed through the console.
type User struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Email        string            `json:"email"`
	Role         string            `json:"role"`
	State        collection.Status `json:"status"`
	LastLogin    time.Time         `json:"last_login"`
	LoginCount   int               `json:"login_count"`
	PasswordHash string            `json:"-"`
}

func (u *User) EntityID() string { return u.ID }

func (u *User) Status() collection.Status { return u.State }

func (u *User) SetStatus(s collection.Status) { u.State = s }

func (u *User) Field(key string) string {
	switch key {
	case "status":
		return string(u.State)
	case "role":
		return u.Role
	default:
		return ""
	}
}

// UserDraft is the create-intent payload for a system user.
type UserDraft struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Role            string `json:"role"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`

	passwordHash string
}

// Validate checks the draft and, when it passes, prepares the password hash
// so Materialize cannot fail afterwards.
func (d *UserDraft) Validate() error {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return &collection.ValidationError{Reason: "name is required"}
	}
	d.Email = strings.TrimSpace(strings.ToLower(d.Email))
	if d.Email == "" {
		return &collection.ValidationError{Reason: "email is required"}
	}
	if !emailPattern.MatchString(d.Email) {
		return &collection.ValidationError{Reason: "email is not valid"}
	}
	if len(d.Password) < minPasswordLength {
		return &collection.ValidationError{
			Reason: fmt.Sprintf("password must be at least %d characters", minPasswordLength),
		}
	}
	if d.Password != d.ConfirmPassword {
		return &collection.ValidationError{Reason: "passwords do not match"}
	}
	role := strings.TrimSpace(strings.ToLower(d.Role))
	if role == "" {
		role = RoleUser
	}
	if role != RoleUser && role != RoleAdmin {
		return &collection.ValidationError{Reason: fmt.Sprintf("unsupported role %q", d.Role)}
	}
	d.Role = role

	hash, err := bcrypt.GenerateFromPassword([]byte(d.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	d.passwordHash = string(hash)
	return nil
}

// Materialize builds the live entity: status active, counters zeroed.
func (d *UserDraft) Materialize(id string, now time.Time) *User {
	return &User{
		ID:           id,
		Name:         d.Name,
		Email:        d.Email,
		Role:         d.Role,
		State:        collection.StatusActive,
		LastLogin:    now,
		LoginCount:   0,
		PasswordHash: d.passwordHash,
	}
}

// VerifyPassword compares a plaintext password with the stored hash.
func (u *User) VerifyPassword(password string) error {
	if u.PasswordHash == "" {
		return fmt.Errorf("no password hash on record")
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}
