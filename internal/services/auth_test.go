package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"weddinginvites/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHasher hashes by concatenation, enough to verify wiring.
type fakeHasher struct{}

func (fakeHasher) GenerateSalt() (string, error) { return "salt", nil }

func (fakeHasher) Hash(salt, password string) (string, error) {
	return salt + ":" + password, nil
}

func (fakeHasher) Compare(hash, salt, password string) error {
	if hash != salt+":"+password {
		return errors.New("mismatch")
	}
	return nil
}

type fakeIssuer struct {
	issued []string // host IDs tokens were issued for
}

func (f *fakeIssuer) Issue(hostID, email string, expiry time.Duration) (string, error) {
	f.issued = append(f.issued, hostID)
	return "token-for-" + hostID, nil
}

func newTestAuthService() (domain.AuthService, *fakeHostRepo, *fakeIssuer) {
	hostRepo := newFakeHostRepo()
	issuer := &fakeIssuer{}
	return NewAuthService(hostRepo, fakeHasher{}, issuer, time.Hour), hostRepo, issuer
}

func TestAuthService_SignUp(t *testing.T) {
	svc, hostRepo, _ := newTestAuthService()

	host, err := svc.SignUp(context.Background(), "  Priya@Example.COM ", "supersecret", "Priya")
	require.NoError(t, err)
	// Email is normalized before storage.
	assert.Equal(t, "priya@example.com", host.Email)
	assert.Equal(t, "Priya", host.Name)
	assert.NotEmpty(t, host.ID)

	stored, err := hostRepo.GetByEmail(context.Background(), "priya@example.com")
	require.NoError(t, err)
	assert.Equal(t, "salt:supersecret", stored.PasswordHash)
}

func TestAuthService_SignUp_Validation(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	t.Run("invalid email", func(t *testing.T) {
		_, err := svc.SignUp(ctx, "not-an-email", "supersecret", "Priya")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("short password", func(t *testing.T) {
		_, err := svc.SignUp(ctx, "priya@example.com", "short", "Priya")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.SignUp(ctx, "priya@example.com", "supersecret", "Priya")
		require.NoError(t, err)
		_, err = svc.SignUp(ctx, "priya@example.com", "supersecret", "Priya Again")
		assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
	})
}

func TestAuthService_Login(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	host, err := svc.SignUp(ctx, "priya@example.com", "supersecret", "Priya")
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		token, err := svc.Login(ctx, "Priya@Example.com", "supersecret")
		require.NoError(t, err)
		assert.Equal(t, "token-for-"+host.ID, token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "priya@example.com", "wrongpass")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "supersecret")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}
