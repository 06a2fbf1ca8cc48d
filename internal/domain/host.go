package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for host operations.
var (
	ErrHostNotFound   = errors.New("host not found")
	ErrDuplicateEmail = errors.New("email already in use")
)

// Host is a couple's account managing invitations.
// swagger:model Host
type Host struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated host.
type TokenIssuer interface {
	Issue(hostID, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated host ID.
type TokenVerifier interface {
	Verify(token string) (hostID string, err error)
}

// HostRepository defines the interface for host storage.
type HostRepository interface {
	Create(ctx context.Context, host *Host) error
	GetByEmail(ctx context.Context, email string) (*Host, error)
	GetByID(ctx context.Context, id string) (*Host, error)
}

// AuthService defines host signup and login.
type AuthService interface {
	SignUp(ctx context.Context, email, password, name string) (*Host, error)
	Login(ctx context.Context, email, password string) (token string, err error)
}
