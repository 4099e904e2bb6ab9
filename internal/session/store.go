package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"admincore.org/internal/ids"
	"admincore.org/internal/store"
)

// Storage keys for the two durable session records. Presence of both means
// a restorable session; absence or parse failure of either means none.
const (
	profileKey = "session.profile"
	tokenKey   = "session.token"
)

const defaultTokenTTL = 12 * time.Hour

// Store owns the current authenticated identity and its durable copy.
// Lifecycle: construct, Restore once at process start, then mutate via
// Login/Logout.
type Store struct {
	kv       store.KV
	tokenTTL time.Duration
	now      func() time.Time

	mu       sync.RWMutex
	current  *Session
	restored bool
}

// StoreOption configures Store behavior.
type StoreOption func(*Store)

// WithTokenTTL overrides the issued token lifetime.
func WithTokenTTL(ttl time.Duration) StoreOption {
	return func(s *Store) {
		if ttl > 0 {
			s.tokenTTL = ttl
		}
	}
}

// WithClock overrides the time source (useful for tests).
func WithClock(fn func() time.Time) StoreOption {
	return func(s *Store) {
		if fn != nil {
			s.now = fn
		}
	}
}

// NewStore constructs a session store over the given durable KV.
func NewStore(kv store.KV, opts ...StoreOption) *Store {
	s := &Store{
		kv:       kv,
		tokenTTL: defaultTokenTTL,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Restore rehydrates a session from the durable store. It runs the read only
// once; later calls report the already-restored state. Missing or corrupt
// records are treated as "no session", never as an error.
func (s *Store) Restore(ctx context.Context) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.restored {
		return s.currentLocked()
	}
	s.restored = true

	profile, err := s.kv.Get(ctx, profileKey)
	if err != nil {
		return Session{}, false
	}
	token, err := s.kv.Get(ctx, tokenKey)
	if err != nil || strings.TrimSpace(token) == "" {
		return Session{}, false
	}
	var sess Session
	if err := json.Unmarshal([]byte(profile), &sess); err != nil {
		return Session{}, false
	}
	if strings.TrimSpace(sess.ID) == "" {
		return Session{}, false
	}
	sess.Role = normalizeRole(sess.Role)
	sess.Token = token
	s.current = &sess
	return sess, true
}

// Login authenticates the credential pair and persists a fresh session.
// Any non-empty identifier/secret pair is accepted; there is no account
// database to verify against in this build.
func (s *Store) Login(ctx context.Context, email, password string) (Session, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || strings.TrimSpace(password) == "" {
		return Session{}, ErrInvalidCredential
	}

	sess := Session{
		ID:    ids.New(),
		Name:  displayName(email),
		Email: email,
		Role:  RoleUser,
	}
	token, err := GenerateToken(sess.ID, sess.Role, s.tokenTTL)
	if err != nil {
		return Session{}, fmt.Errorf("issue token: %w", err)
	}
	sess.Token = token

	profile, err := json.Marshal(sess)
	if err != nil {
		return Session{}, fmt.Errorf("encode profile: %w", err)
	}
	if err := s.kv.Put(ctx, profileKey, string(profile)); err != nil {
		return Session{}, fmt.Errorf("persist profile: %w", err)
	}
	if err := s.kv.Put(ctx, tokenKey, token); err != nil {
		return Session{}, fmt.Errorf("persist token: %w", err)
	}

	s.mu.Lock()
	s.current = &sess
	s.restored = true
	s.mu.Unlock()
	return sess, nil
}

// Logout clears the durable records and drops the in-memory session.
// Calling it with no active session is a no-op.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.kv.Delete(ctx, profileKey); err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("clear profile: %w", err)
	}
	if err := s.kv.Delete(ctx, tokenKey); err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("clear token: %w", err)
	}
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	return nil
}

// Current returns the live session, if any.
func (s *Store) Current() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentLocked()
}

// Restored reports whether the one-shot startup restore has completed.
func (s *Store) Restored() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.restored
}

func (s *Store) currentLocked() (Session, bool) {
	if s.current == nil {
		return Session{}, false
	}
	return *s.current, true
}

func displayName(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}
