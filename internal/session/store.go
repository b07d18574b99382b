package session

import (
	"context"
	"sync"

	"github.com/DJRivera25/blogctl/internal/api"
	"github.com/DJRivera25/blogctl/internal/errors"
	"github.com/DJRivera25/blogctl/internal/log"
)

// Identity is the resolved user behind the held token. The zero value is the
// anonymous viewer; IsAdmin and Email are meaningful only when ID is set.
type Identity struct {
	ID      string
	IsAdmin bool
	Email   string
}

// Authenticated reports whether the identity refers to a real user
func (i Identity) Authenticated() bool {
	return i.ID != ""
}

// IdentityResolver converts the current token into a user record. Satisfied
// by *api.Client.
type IdentityResolver interface {
	GetUserDetails(ctx context.Context) (*api.UserDetails, error)
}

// Store owns the bearer token and the resolved identity. It is the single
// source of truth for authentication; every dependent component receives the
// same injected instance.
//
// Invariant: at any observable instant, a non-zero Identity implies a
// non-empty token. The reverse does not hold while a resolution is in flight.
type Store struct {
	mu       sync.RWMutex
	token    string
	identity Identity

	resolver IdentityResolver
	storage  TokenStorage
	logger   *log.Logger
}

// NewStore creates a session store. The resolver is typically the API client
// whose token source is this store's Token method.
func NewStore(resolver IdentityResolver, storage TokenStorage, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &Store{
		resolver: resolver,
		storage:  storage,
		logger:   logger,
	}
}

// Token returns the current bearer token, or "" for the anonymous viewer.
// Suitable as an api.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Identity returns a snapshot of the resolved identity
func (s *Store) Identity() Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

// Init loads the persisted token and, when one exists, resolves the identity.
// A token that fails to resolve is discarded entirely (fail-closed); the
// caller ends up anonymous and receives the resolution error.
func (s *Store) Init(ctx context.Context) error {
	token, err := s.storage.Load()
	if err != nil {
		return err
	}
	if token == "" {
		return nil
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	return s.ResolveIdentity(ctx)
}

// SetToken replaces the held token. A non-empty token is persisted and
// triggers identity resolution; an empty token clears the identity and all
// session persistence.
func (s *Store) SetToken(ctx context.Context, token string) error {
	if token == "" {
		s.Logout()
		return nil
	}

	s.mu.Lock()
	s.token = token
	s.identity = Identity{}
	s.mu.Unlock()

	if err := s.storage.Save(token); err != nil {
		return err
	}

	return s.ResolveIdentity(ctx)
}

// ResolveIdentity fetches the user record behind the current token. Any
// failure clears both identity and token, including the persisted copy: an
// unusable token must not leave a stale identity in place.
func (s *Store) ResolveIdentity(ctx context.Context) error {
	if s.Token() == "" {
		s.mu.Lock()
		s.identity = Identity{}
		s.mu.Unlock()
		return nil
	}

	details, err := s.resolver.GetUserDetails(ctx)
	if err != nil {
		s.logger.Warn("identity resolution failed, discarding session", "error", err.Error())
		s.Logout()
		return errors.NewIdentityResolveError(err)
	}
	if details.ID == "" {
		s.logger.Warn("identity resolution returned no user id, discarding session")
		s.Logout()
		return errors.NewIdentityResolveError(errors.New(errors.ErrCodeBadResponse, "identity record missing id"))
	}

	s.mu.Lock()
	s.identity = Identity{
		ID:      details.ID,
		IsAdmin: details.IsAdmin,
		Email:   details.Email,
	}
	s.mu.Unlock()

	s.logger.Debug("identity resolved", "user_id", details.ID, "is_admin", details.IsAdmin)
	return nil
}

// Logout unconditionally clears token, identity, and session persistence.
// Calling it twice is the same as calling it once.
func (s *Store) Logout() {
	s.mu.Lock()
	s.token = ""
	s.identity = Identity{}
	s.mu.Unlock()

	if err := s.storage.Clear(); err != nil {
		s.logger.Warn("failed to clear persisted credentials", "error", err.Error())
	}
}
