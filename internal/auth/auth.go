package auth

import (
	"context"
	"errors"
	"log"

	"quiz-trainer/internal/domain"
)

// CredentialStore checks a user name and password.
type CredentialStore interface {
	Verify(ctx context.Context, username, password string) error
}

// SessionStore maps login session ids to user names.
type SessionStore interface {
	Create(ctx context.Context, username string) (string, error)
	Get(ctx context.Context, id string) (string, error)
	Delete(ctx context.Context, id string) error
}

// Authenticator contains the login use cases.
type Authenticator struct {
	credentials CredentialStore
	sessions    SessionStore
}

func NewAuthenticator(credentials CredentialStore, sessions SessionStore) *Authenticator {
	return &Authenticator{credentials: credentials, sessions: sessions}
}

// Login verifies the credentials and opens a session, returning its id.
func (a *Authenticator) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" {
		return "", domain.ErrInvalidCredentials
	}
	if err := a.credentials.Verify(ctx, username, password); err != nil {
		return "", err
	}
	id, err := a.sessions.Create(ctx, username)
	if err != nil {
		return "", err
	}
	log.Printf("user %s logged in", username)
	return id, nil
}

// Logout closes the session; unknown ids are ignored.
func (a *Authenticator) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return a.sessions.Delete(ctx, sessionID)
}

// User resolves a session id to its user, returning ErrUnauthorized when the
// session is missing or expired.
func (a *Authenticator) User(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", domain.ErrUnauthorized
	}
	username, err := a.sessions.Get(ctx, sessionID)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return "", domain.ErrUnauthorized
	}
	if err != nil {
		return "", err
	}
	return username, nil
}
