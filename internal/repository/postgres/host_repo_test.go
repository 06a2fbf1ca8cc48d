package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"weddinginvites/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestHostRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	host := &domain.Host{
		Email:        "priya@example.com",
		Name:         "Priya",
		PasswordHash: "hash",
		Salt:         "salt",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`INSERT INTO hosts`).
			WithArgs("priya@example.com", "Priya", "hash", "salt", now, now).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("host-1"))

		repo := NewHostRepository(db)
		require.NoError(t, repo.Create(ctx, host))
		require.Equal(t, "host-1", host.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`INSERT INTO hosts`).
			WillReturnError(&pq.Error{Code: "23505"})

		repo := NewHostRepository(db)
		require.ErrorIs(t, repo.Create(ctx, host), domain.ErrDuplicateEmail)
	})
}

func TestHostRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		rows := sqlmock.NewRows([]string{"id", "email", "name", "password_hash", "salt", "created_at", "updated_at"}).
			AddRow("host-1", "priya@example.com", "Priya", "hash", "salt", now, now)
		mock.ExpectQuery(`SELECT id, email, name, password_hash, salt, created_at, updated_at`).
			WithArgs("priya@example.com").
			WillReturnRows(rows)

		repo := NewHostRepository(db)
		h, err := repo.GetByEmail(ctx, "priya@example.com")
		require.NoError(t, err)
		require.Equal(t, "host-1", h.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, email, name, password_hash, salt, created_at, updated_at`).
			WithArgs("nobody@example.com").
			WillReturnError(sql.ErrNoRows)

		repo := NewHostRepository(db)
		_, err = repo.GetByEmail(ctx, "nobody@example.com")
		require.ErrorIs(t, err, domain.ErrHostNotFound)
	})
}
