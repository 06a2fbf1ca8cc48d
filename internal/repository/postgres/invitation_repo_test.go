package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"weddinginvites/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestInvitationRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		inv     *domain.Invitation
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr bool
	}{
		{
			name: "success",
			inv:  domain.NewInvitation("host-1", "abc123", "Priya & Rahul", now, now),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO invitations \(host_id, token, title, created_at, updated_at\)`).
					WithArgs("host-1", "abc123", "Priya & Rahul", now, now).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("inv-uuid-1"))
			},
			wantID:  "inv-uuid-1",
			wantErr: false,
		},
		{
			name: "db error",
			inv:  domain.NewInvitation("host-1", "abc123", "Wedding", now, now),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO invitations`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewInvitationRepository(db)
			err = repo.Create(ctx, tt.inv)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.inv.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestInvitationRepository_GetByToken(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	viewed := now.Add(time.Hour)

	tests := []struct {
		name       string
		token      string
		mock       func(mock sqlmock.Sqlmock)
		wantErr    error
		wantViewed bool
	}{
		{
			name:  "found with viewed_at",
			token: "abc123",
			mock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "host_id", "token", "title", "created_at", "updated_at", "viewed_at"}).
					AddRow("inv-1", "host-1", "abc123", "Wedding", now, now, viewed)
				mock.ExpectQuery(`SELECT id, host_id, token, title, created_at, updated_at, viewed_at`).
					WithArgs("abc123").
					WillReturnRows(rows)
			},
			wantViewed: true,
		},
		{
			name:  "found never viewed",
			token: "abc123",
			mock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "host_id", "token", "title", "created_at", "updated_at", "viewed_at"}).
					AddRow("inv-1", "host-1", "abc123", "Wedding", now, now, nil)
				mock.ExpectQuery(`SELECT id, host_id, token, title, created_at, updated_at, viewed_at`).
					WithArgs("abc123").
					WillReturnRows(rows)
			},
			wantViewed: false,
		},
		{
			name:  "not found",
			token: "nope",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, host_id, token, title, created_at, updated_at, viewed_at`).
					WithArgs("nope").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewInvitationRepository(db)
			inv, err := repo.GetByToken(ctx, tt.token)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "inv-1", inv.ID)
			if tt.wantViewed {
				require.NotNil(t, inv.ViewedAt)
			} else {
				require.Nil(t, inv.ViewedAt)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestInvitationRepository_ListByHostID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "host_id", "token", "title", "created_at", "updated_at", "viewed_at"}).
		AddRow("inv-2", "host-1", "tok2", "Second", now.Add(time.Hour), now.Add(time.Hour), nil).
		AddRow("inv-1", "host-1", "tok1", "First", now, now, nil)
	mock.ExpectQuery(`SELECT id, host_id, token, title, created_at, updated_at, viewed_at`).
		WithArgs("host-1").
		WillReturnRows(rows)

	repo := NewInvitationRepository(db)
	invs, err := repo.ListByHostID(ctx, "host-1")
	require.NoError(t, err)
	require.Len(t, invs, 2)
	require.Equal(t, "inv-2", invs[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInvitationRepository_MarkViewed(t *testing.T) {
	ctx := context.Background()
	viewedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE invitations SET viewed_at = \$1, updated_at = NOW\(\) WHERE id = \$2`).
			WithArgs(viewedAt, "inv-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewInvitationRepository(db)
		require.NoError(t, repo.MarkViewed(ctx, "inv-1", viewedAt))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown id", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE invitations`).
			WithArgs(viewedAt, "inv-nope").
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewInvitationRepository(db)
		require.ErrorIs(t, repo.MarkViewed(ctx, "inv-nope", viewedAt), domain.ErrNotFound)
	})
}
