package auth

import (
	"context"
	"time"
)

// Persistence is how long a sign-in lasts on the client.
type Persistence string

const (
	// PersistenceLocal survives browser restarts until sign-out.
	PersistenceLocal Persistence = "local"
	// PersistenceSession ends when the browser session ends.
	PersistenceSession Persistence = "session"
)

type User struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	Name        string      `json:"name"`
	Persistence Persistence `json:"persistence"`
}

// Account is an administrator as stored, password hash included.
type Account struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Disabled     bool
}

// Session is the result of a successful sign-in.
type Session struct {
	User        User
	Token       string
	ExpiresAt   time.Time
	Persistence Persistence
}

type AccountStore interface {
	// FindByEmail returns ErrUserNotFound when no account has that email.
	FindByEmail(ctx context.Context, email string) (*Account, error)
}

// RevocationStore remembers signed-out token ids until they would have expired anyway.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
