// Package auth validates credentials and gates requests on session tokens.
package auth

import (
	"github.com/autolearn/kotoba/internal/apperr"
	"github.com/autolearn/kotoba/internal/models"
	"github.com/autolearn/kotoba/internal/session"
)

// Account is one statically configured login. Credentials are plaintext and
// known at process start; there is no external identity provider.
type Account struct {
	Username string
	Password string
	Role     string
}

// Gate authenticates against a fixed set of accounts and manages sessions.
type Gate struct {
	accounts []Account
	sessions *session.Store
}

// NewGate creates a Gate over the given accounts and session store.
func NewGate(accounts []Account, sessions *session.Store) *Gate {
	return &Gate{accounts: accounts, sessions: sessions}
}

// Login checks username/password against the configured accounts. On match it
// creates a session and returns the user (password stripped) and its token;
// otherwise apperr.ErrInvalidCredentials.
func (g *Gate) Login(username, password string) (models.User, string, error) {
	for _, acc := range g.accounts {
		if username == acc.Username && password == acc.Password {
			user := models.User{Username: acc.Username, Role: acc.Role}
			return user, g.sessions.Create(user), nil
		}
	}
	return models.User{}, "", apperr.ErrInvalidCredentials
}

// Check resolves a session token to its user, or apperr.ErrUnauthenticated
// when the token is absent or unknown.
func (g *Gate) Check(token string) (models.User, error) {
	if token == "" {
		return models.User{}, apperr.ErrUnauthenticated
	}
	user, ok := g.sessions.Lookup(token)
	if !ok {
		return models.User{}, apperr.ErrUnauthenticated
	}
	return user, nil
}

// Logout revokes a session. Idempotent: an absent token is a no-op.
func (g *Gate) Logout(token string) {
	if token == "" {
		return
	}
	g.sessions.Revoke(token)
}

// RequireAdmin returns apperr.ErrForbidden unless user holds the admin role.
func (g *Gate) RequireAdmin(user models.User) error {
	if !user.IsAdmin() {
		return apperr.ErrForbidden
	}
	return nil
}
