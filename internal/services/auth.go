package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"weddinginvites/internal/domain"
)

const minPasswordLen = 8

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type authService struct {
	hostRepo  domain.HostRepository
	hasher    domain.PasswordHasher
	issuer    domain.TokenIssuer
	jwtExpiry time.Duration
}

// NewAuthService creates an AuthService with the given repository, hasher, and token issuer.
func NewAuthService(hostRepo domain.HostRepository, hasher domain.PasswordHasher, issuer domain.TokenIssuer, jwtExpiry time.Duration) domain.AuthService {
	return &authService{
		hostRepo:  hostRepo,
		hasher:    hasher,
		issuer:    issuer,
		jwtExpiry: jwtExpiry,
	}
}

func (s *authService) SignUp(ctx context.Context, email, password, name string) (*domain.Host, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRegexp.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLen)
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	hash, err := s.hasher.Hash(salt, password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	host := &domain.Host{
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		Salt:         salt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.hostRepo.Create(ctx, host); err != nil {
		if err == domain.ErrDuplicateEmail {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create host: %w", err)
	}
	return host, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	// Unknown email and wrong password are indistinguishable to the caller.
	host, err := s.hostRepo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		return "", fmt.Errorf("%w: invalid credentials", domain.ErrInvalidInput)
	}
	if err := s.hasher.Compare(host.PasswordHash, host.Salt, password); err != nil {
		return "", fmt.Errorf("%w: invalid credentials", domain.ErrInvalidInput)
	}

	token, err := s.issuer.Issue(host.ID, host.Email, s.jwtExpiry)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}
