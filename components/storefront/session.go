package storefront

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Flash is the single-slot transient notice rendered once on the next page.
// Setting a new flash replaces whatever is currently pending, mirroring the
// shared toast slot of the storefront UI.
type Flash struct {
	Message string
	Kind    string
}

// SessionStore maps opaque tokens to identity snapshots. Implementations
// ensure thread safety; tokens must be unguessable.
type SessionStore interface {
	Create(ctx context.Context, session Session) (string, error)
	Get(ctx context.Context, token string) (Session, bool)
	Revoke(ctx context.Context, token string) error
	SetFlash(ctx context.Context, token string, flash Flash) error
	TakeFlash(ctx context.Context, token string) (Flash, bool)
}

// InMemorySessionStore provides a concurrency-safe default store.
type InMemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	flashes  map[string]Flash
}

// NewInMemorySessionStore creates an empty session store.
func NewInMemorySessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{
		sessions: make(map[string]Session),
		flashes:  make(map[string]Flash),
	}
}

// Create registers the snapshot under a fresh opaque token.
func (s *InMemorySessionStore) Create(_ context.Context, session Session) (string, error) {
	if session.Email == "" {
		return "", fmt.Errorf("storefront: session requires an email")
	}
	token := uuid.NewString()
	session.Token = token
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = session
	return token, nil
}

// Get resolves a token to its snapshot.
func (s *InMemorySessionStore) Get(_ context.Context, token string) (Session, bool) {
	if token == "" {
		return Session{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[token]
	return session, ok
}

// Revoke drops the token and any pending flash. Revoking an unknown token is
// a no-op.
func (s *InMemorySessionStore) Revoke(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	delete(s.flashes, token)
	return nil
}

// SetFlash replaces the pending notice for the session.
func (s *InMemorySessionStore) SetFlash(_ context.Context, token string, flash Flash) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[token]; !ok {
		return fmt.Errorf("storefront: unknown session token")
	}
	s.flashes[token] = flash
	return nil
}

// TakeFlash returns the pending notice and clears the slot.
func (s *InMemorySessionStore) TakeFlash(_ context.Context, token string) (Flash, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	flash, ok := s.flashes[token]
	if ok {
		delete(s.flashes, token)
	}
	return flash, ok
}
