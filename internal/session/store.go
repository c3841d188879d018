package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/prasetyodt/railbooking/internal/domain"
	"github.com/prasetyodt/railbooking/internal/storage"
)

// Namespace is the persisted blob key for session state.
const Namespace = "auth-storage"

// Session is the locally held proof of an authenticated user. User and
// Token are always set together; a missing ExpiresAt means no expiry
// was recorded, which counts as expired.
type Session struct {
	User      *domain.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt *time.Time   `json:"expires_at"`
}

// Store is the single source of truth for the current session. It is
// an injectable instance, not a singleton; construct one per process
// and pass it where the token is needed.
type Store struct {
	mu      sync.Mutex
	state   Session
	storage storage.Store
	now     func() time.Time
	log     *logrus.Logger
}

type StoreOption func(*Store)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

func WithLogger(log *logrus.Logger) StoreOption {
	return func(s *Store) { s.log = log }
}

// NewStore rehydrates the session from st. A missing blob starts
// anonymous; a corrupt or unreadable one is logged and discarded.
func NewStore(ctx context.Context, st storage.Store, opts ...StoreOption) *Store {
	s := &Store{
		storage: st,
		now:     time.Now,
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	var state Session
	if err := st.Load(ctx, &state); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.WithError(err).Warn("session: failed to rehydrate, starting anonymous")
		}
		return s
	}
	s.state = state
	return s
}

// Login replaces the whole session atomically. A zero expiresAt records
// no expiry. The token format is not inspected.
func (s *Store) Login(ctx context.Context, user domain.User, token string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Session{User: &user, Token: token}
	if !expiresAt.IsZero() {
		t := expiresAt
		s.state.ExpiresAt = &t
	}
	s.persist(ctx)
}

// Logout clears user, token and expiry together and removes the
// persisted copy.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Session{}
	if err := s.storage.Delete(ctx); err != nil {
		s.log.WithError(err).Warn("session: failed to delete persisted state")
	}
}

// IsLoggedIn reports whether a token is present and its expiry lies in
// the future.
func (s *Store) IsLoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Token != "" && s.state.ExpiresAt != nil && s.state.ExpiresAt.After(s.now())
}

// IsTokenExpired reports whether the recorded expiry has passed, or
// none was recorded. It never mutates the store; acting on a stale
// session is the caller's responsibility.
func (s *Store) IsTokenExpired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.ExpiresAt == nil || s.state.ExpiresAt.Before(s.now())
}

// Current returns a snapshot of the session.
func (s *Store) Current() Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.state
	if s.state.User != nil {
		u := *s.state.User
		out.User = &u
	}
	if s.state.ExpiresAt != nil {
		t := *s.state.ExpiresAt
		out.ExpiresAt = &t
	}
	return out
}

// Token implements gateway.TokenSource. It returns the raw token even
// when expired; the backend decides what a stale credential is worth.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Token
}

// persist is called with the lock held. A write failure keeps the
// in-memory mutation and is only logged.
func (s *Store) persist(ctx context.Context) {
	if err := s.storage.Save(ctx, s.state); err != nil {
		s.log.WithError(err).Warn("session: failed to persist state")
	}
}
