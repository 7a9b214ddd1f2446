// Package session tracks logged-in profiles. Each token is a small state
// machine: no record means LoggedOut, a record means LoggedIn with a profile
// snapshot. The snapshot lives in memory for fast reads and is persisted so
// sessions survive a restart; Refresh is the only mechanism that brings it
// back in line with the users collection (pull-based, not transactional).
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"nestgirl/internal/model"
	"nestgirl/internal/repository"

	"go.uber.org/zap"
)

// ErrLoggedOut is returned for tokens with no session.
var ErrLoggedOut = errors.New("session not found or logged out")

// Store holds the in-memory cache over the persisted session records.
type Store struct {
	mu    sync.RWMutex
	cache map[string]*repository.SessionRecord

	sessions repository.SessionRepository
	users    repository.UserRepository
	log      *zap.SugaredLogger
}

// NewStore creates a session store over the given repositories.
func NewStore(sessions repository.SessionRepository, users repository.UserRepository, log *zap.SugaredLogger) *Store {
	return &Store{
		cache:    make(map[string]*repository.SessionRecord),
		sessions: sessions,
		users:    users,
		log:      log,
	}
}

// Put transitions a token to LoggedIn: the snapshot is cached and persisted.
// Concurrent logins for the same token are not coordinated; last call wins.
func (s *Store) Put(ctx context.Context, rec *repository.SessionRecord) error {
	if err := s.sessions.Save(ctx, rec); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	s.mu.Lock()
	s.cache[rec.Token] = rec
	s.mu.Unlock()
	return nil
}

// Get returns the cached profile for a token, falling back to the persisted
// record so a restarted server resumes sessions lazily.
func (s *Store) Get(ctx context.Context, token string) (*model.Profile, error) {
	s.mu.RLock()
	rec, ok := s.cache[token]
	s.mu.RUnlock()
	if ok {
		p := rec.Profile
		return &p, nil
	}

	rec, err := s.sessions.Find(ctx, token)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrLoggedOut
	}
	s.mu.Lock()
	s.cache[token] = rec
	s.mu.Unlock()
	p := rec.Profile
	return &p, nil
}

// Refresh re-fetches the profile from the users collection and replaces both
// copies. Called after any server-side mutation of the profile so the cached
// view catches up. Synthetic admin profiles have no users row; their
// snapshot is left as-is.
func (s *Store) Refresh(ctx context.Context, token string) (*model.Profile, error) {
	s.mu.RLock()
	rec, ok := s.cache[token]
	s.mu.RUnlock()
	if !ok {
		var err error
		rec, err = s.sessions.Find(ctx, token)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			return nil, ErrLoggedOut
		}
	}

	fresh, err := s.users.FindByPhone(ctx, rec.Phone)
	if err != nil {
		return nil, fmt.Errorf("failed to re-fetch profile: %w", err)
	}
	if fresh == nil {
		p := rec.Profile
		return &p, nil
	}

	updated := &repository.SessionRecord{
		Token:        rec.Token,
		Phone:        rec.Phone,
		Profile:      *fresh,
		FirstSession: rec.FirstSession,
	}
	if err := s.sessions.UpdateProfile(ctx, token, fresh); err != nil {
		// The write already happened upstream; a stale persisted snapshot
		// heals on the next refresh.
		s.log.Warnw("failed to persist refreshed session profile", "error", err)
	}
	s.mu.Lock()
	s.cache[token] = updated
	s.mu.Unlock()

	p := *fresh
	return &p, nil
}

// Logout transitions the token to LoggedOut and clears the persisted copy.
// Logging out an unknown token is a no-op.
func (s *Store) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Delete(ctx, token); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.cache, token)
	s.mu.Unlock()
	return nil
}

// ConsumeFirstSession returns whether this is the first session after
// signup and clears the flag, so the onboarding walkthrough runs once.
func (s *Store) ConsumeFirstSession(ctx context.Context, token string) bool {
	s.mu.Lock()
	rec, ok := s.cache[token]
	first := ok && rec.FirstSession
	if first {
		rec.FirstSession = false
	}
	s.mu.Unlock()

	if !ok {
		persisted, err := s.sessions.Find(ctx, token)
		if err != nil || persisted == nil {
			return false
		}
		first = persisted.FirstSession
		persisted.FirstSession = false
		s.mu.Lock()
		s.cache[token] = persisted
		s.mu.Unlock()
	}

	if first {
		if err := s.sessions.ClearFirstSession(ctx, token); err != nil {
			s.log.Warnw("failed to clear first-session flag", "error", err)
		}
	}
	return first
}
