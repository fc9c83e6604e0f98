package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/watchlist/internal/shared"
)

const MaxNameLength = 20

// DefaultAdminName is the display name given to an admin created from the CLI.
const DefaultAdminName = "Admin"

var _ Model = (*User)(nil)

// User is the watchlist owner. Only the first user is ever treated as the admin.
type User struct {
	timestamps
	id           int64
	name         string
	username     string
	passwordHash string
}

// NewUser creates a User with the given display name and login username.
func NewUser(name, username string) *User {
	return &User{
		timestamps: newTimestamps(),
		name:       strings.TrimSpace(name),
		username:   strings.TrimSpace(username),
	}
}

func (u *User) ID() int64            { return u.id }
func (u *User) Name() string         { return u.name }
func (u *User) Username() string     { return u.username }
func (u *User) PasswordHash() string { return u.passwordHash }

func (u *User) SetID(id int64)              { u.id = id }
func (u *User) SetName(name string)         { u.name = strings.TrimSpace(name) }
func (u *User) SetUsername(username string) { u.username = strings.TrimSpace(username) }
func (u *User) SetPasswordHash(h string)    { u.passwordHash = h }

// HasPassword reports whether credentials have been set for this user.
func (u *User) HasPassword() bool { return u.passwordHash != "" }

// Validate requires a display name of 1..20 characters.
func (u *User) Validate() error {
	return ValidateName(u.name)
}

// ValidateName checks a display name against the user name limits.
func ValidateName(name string) error {
	switch n := shared.CharCount(name); {
	case n == 0:
		return fmt.Errorf("%w: name is required", shared.ErrInvalidInput)
	case n > MaxNameLength:
		return fmt.Errorf("%w: name must be at most %d characters", shared.ErrInvalidInput, MaxNameLength)
	}
	return nil
}

// Session links an opaque cookie token to a user until it expires.
type Session struct {
	Token     string
	UserID    int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is no longer valid at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
