package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/watchlist/internal/models"
	"github.com/desertthunder/watchlist/internal/shared"
)

// SessionRepository persists login sessions keyed by their cookie token.
type SessionRepository struct {
	db DBTX
}

// NewSessionRepository creates a new [SessionRepository] with the given database connection
func NewSessionRepository(db DBTX) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create stores a session. The token must be unique.
func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	query := `INSERT INTO sessions (token, user_id, created_at, expires_at) VALUES (?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		session.Token, session.UserID, session.CreatedAt.UTC(), session.ExpiresAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

// Get retrieves a session by token. Expired sessions are returned as-is; callers check [models.Session.Expired].
func (r *SessionRepository) Get(ctx context.Context, token string) (*models.Session, error) {
	query := `SELECT token, user_id, created_at, expires_at FROM sessions WHERE token = ?`

	var (
		session   models.Session
		expiresAt int64
	)
	err := r.db.QueryRowContext(ctx, query, token).Scan(&session.Token, &session.UserID, &session.CreatedAt, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: session", shared.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}

	session.ExpiresAt = time.Unix(expiresAt, 0).UTC()
	return &session, nil
}

// Delete removes a session by token. Deleting an unknown token is not an error.
func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpired removes every session that expired at or before now and reports how many were pruned.
func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, now.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to prune sessions: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return n, nil
}

// DeleteAll removes every session.
func (r *SessionRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("failed to clear sessions: %w", err)
	}
	return nil
}
