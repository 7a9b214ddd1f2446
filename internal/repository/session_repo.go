package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"nestgirl/internal/model"

	"github.com/jackc/pgx/v5"
)

// SessionRecord is a persisted login session: the token, the phone it
// belongs to, a snapshot of the profile at login/refresh time, and a
// one-shot flag marking the first session after signup.
type SessionRecord struct {
	Token        string
	Phone        string
	Profile      model.Profile
	FirstSession bool
}

// SessionRepository persists login sessions so they survive restarts.
type SessionRepository interface {
	Save(ctx context.Context, rec *SessionRecord) error
	Find(ctx context.Context, token string) (*SessionRecord, error)
	UpdateProfile(ctx context.Context, token string, p *model.Profile) error
	ClearFirstSession(ctx context.Context, token string) error
	Delete(ctx context.Context, token string) error
}

type sessionRepository struct {
	db DB
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db DB) SessionRepository {
	return &sessionRepository{db: db}
}

// Save upserts a session row; logging in again with the same token replaces
// the snapshot (last call wins).
func (r *sessionRepository) Save(ctx context.Context, rec *SessionRecord) error {
	profile, err := json.Marshal(rec.Profile)
	if err != nil {
		return fmt.Errorf("failed to marshal session profile: %w", err)
	}
	sql := `INSERT INTO sessions (token, phone, profile, first_session) VALUES ($1, $2, $3, $4)
            ON CONFLICT (token) DO UPDATE SET profile = EXCLUDED.profile, first_session = EXCLUDED.first_session`
	if _, err := r.db.Exec(ctx, sql, rec.Token, rec.Phone, profile, rec.FirstSession); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Find retrieves a session by token. Not found returns (nil, nil).
func (r *sessionRepository) Find(ctx context.Context, token string) (*SessionRecord, error) {
	rec := &SessionRecord{}
	var profile []byte
	sql := `SELECT token, phone, profile, first_session FROM sessions WHERE token = $1`
	err := r.db.QueryRow(ctx, sql, token).Scan(&rec.Token, &rec.Phone, &profile, &rec.FirstSession)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	if err := json.Unmarshal(profile, &rec.Profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session profile: %w", err)
	}
	return rec, nil
}

// UpdateProfile replaces the persisted profile snapshot after a refresh.
func (r *sessionRepository) UpdateProfile(ctx context.Context, token string, p *model.Profile) error {
	profile, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal session profile: %w", err)
	}
	sql := `UPDATE sessions SET profile = $1 WHERE token = $2`
	tag, err := r.db.Exec(ctx, sql, profile, token)
	if err != nil {
		return fmt.Errorf("failed to update session profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("session not found for profile update")
	}
	return nil
}

// ClearFirstSession drops the one-shot onboarding flag.
func (r *sessionRepository) ClearFirstSession(ctx context.Context, token string) error {
	sql := `UPDATE sessions SET first_session = FALSE WHERE token = $1`
	if _, err := r.db.Exec(ctx, sql, token); err != nil {
		return fmt.Errorf("failed to clear first-session flag: %w", err)
	}
	return nil
}

// Delete removes a session on logout. Deleting an absent token is not an
// error; logout is idempotent.
func (r *sessionRepository) Delete(ctx context.Context, token string) error {
	sql := `DELETE FROM sessions WHERE token = $1`
	if _, err := r.db.Exec(ctx, sql, token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
