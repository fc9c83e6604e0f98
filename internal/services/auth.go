package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/watchlist/internal/models"
	"github.com/desertthunder/watchlist/internal/repositories"
	"github.com/desertthunder/watchlist/internal/shared"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor used by [HashPassword].
var BcryptCost = bcrypt.DefaultCost

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("%w: password is required", shared.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: password must be at most 72 bytes", shared.ErrInvalidInput)
	}
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the bcrypt hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// AuthService authenticates the admin and manages login sessions.
type AuthService struct {
	users    *repositories.UserRepository
	sessions *repositories.SessionRepository
	ttl      time.Duration
	now      func() time.Time
}

// NewAuthService creates an [AuthService] whose sessions live for ttl.
func NewAuthService(db repositories.DBTX, ttl time.Duration) *AuthService {
	return &AuthService{
		users:    repositories.NewUserRepository(db),
		sessions: repositories.NewSessionRepository(db),
		ttl:      ttl,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Login checks username and password against the admin and creates a session.
//
// Every mismatch, including a database without users, returns [shared.ErrInvalidCredentials].
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.Session, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", shared.ErrInvalidInput)
	}

	admin, err := s.users.First(ctx)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, shared.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if admin.Username() != username || !CheckPassword(admin.PasswordHash(), password) {
		return nil, shared.ErrInvalidCredentials
	}

	now := s.now()
	if _, err := s.sessions.DeleteExpired(ctx, now); err != nil {
		return nil, err
	}

	session := &models.Session{
		Token:     shared.GenerateID(),
		UserID:    admin.ID(),
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}
	return session, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

// CurrentUser returns the user behind token, or an error wrapping [shared.ErrNotAuthenticated].
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, shared.ErrNotAuthenticated
	}

	session, err := s.sessions.Get(ctx, token)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, shared.ErrNotAuthenticated
	}
	if err != nil {
		return nil, err
	}

	if session.Expired(s.now()) {
		return nil, fmt.Errorf("%w: %w", shared.ErrNotAuthenticated, shared.ErrSessionExpired)
	}

	user, err := s.users.Get(ctx, session.UserID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, shared.ErrNotAuthenticated
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Admin returns the first user, or [shared.ErrNoAdmin] on an empty database.
func (s *AuthService) Admin(ctx context.Context) (*models.User, error) {
	user, err := s.users.First(ctx)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, shared.ErrNoAdmin
	}
	return user, err
}

func (s *AuthService) UpdateName(ctx context.Context, user *models.User, name string) error {
	if err := models.ValidateName(name); err != nil {
		return err
	}

	user.SetName(name)
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	return nil
}

// SetAdmin creates the admin when no user exists, or overwrites the first user's credentials.
// created reports which of the two happened.
func (s *AuthService) SetAdmin(ctx context.Context, username, password string) (created bool, err error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return false, fmt.Errorf("%w: username is required", shared.ErrInvalidInput)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return false, err
	}

	admin, err := s.users.First(ctx)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		admin = models.NewUser(models.DefaultAdminName, username)
		admin.SetPasswordHash(hash)
		if err := s.users.Create(ctx, admin); err != nil {
			return false, fmt.Errorf("failed to create admin: %w", err)
		}
		return true, nil
	case err != nil:
		return false, err
	}

	admin.SetUsername(username)
	admin.SetPasswordHash(hash)
	if err := s.users.Update(ctx, admin); err != nil {
		return false, fmt.Errorf("failed to update admin: %w", err)
	}
	return false, nil
}
