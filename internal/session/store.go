// Package session holds the in-memory session store.
package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/autolearn/kotoba/internal/models"
)

// Store maps opaque session tokens to authenticated users. It lives for the
// lifetime of the process: sessions are destroyed on logout or restart, never
// evicted server-side. Safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]models.User
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]models.User)}
}

// Create registers a session for user and returns its token.
func (s *Store) Create(user models.User) string {
	token := uuid.NewString()
	s.mu.Lock()
	s.sessions[token] = user
	s.mu.Unlock()
	return token
}

// Lookup returns the user bound to token, if any.
func (s *Store) Lookup(token string) (models.User, bool) {
	s.mu.RLock()
	user, ok := s.sessions[token]
	s.mu.RUnlock()
	return user, ok
}

// Revoke removes a session. Revoking an absent token is a no-op.
func (s *Store) Revoke(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}
