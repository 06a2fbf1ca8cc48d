package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"weddinginvites/internal/domain"
)

type invitationRepository struct {
	DB *sql.DB
}

func NewInvitationRepository(db *sql.DB) domain.InvitationRepository {
	return &invitationRepository{
		DB: db,
	}
}

func (r *invitationRepository) Create(ctx context.Context, inv *domain.Invitation) error {
	query := `
		INSERT INTO invitations (host_id, token, title, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, inv.HostID, inv.Token, inv.Title, inv.CreatedAt, inv.UpdatedAt).Scan(&inv.ID)
}

func (r *invitationRepository) scanRow(row *sql.Row) (*domain.Invitation, error) {
	inv := &domain.Invitation{}
	var viewedNull sql.NullTime
	err := row.Scan(&inv.ID, &inv.HostID, &inv.Token, &inv.Title, &inv.CreatedAt, &inv.UpdatedAt, &viewedNull)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if viewedNull.Valid {
		inv.ViewedAt = &viewedNull.Time
	}
	return inv, nil
}

func (r *invitationRepository) GetByID(ctx context.Context, id string) (*domain.Invitation, error) {
	query := `
		SELECT id, host_id, token, title, created_at, updated_at, viewed_at
		FROM invitations
		WHERE id = $1
	`
	return r.scanRow(r.DB.QueryRowContext(ctx, query, id))
}

func (r *invitationRepository) GetByToken(ctx context.Context, token string) (*domain.Invitation, error) {
	query := `
		SELECT id, host_id, token, title, created_at, updated_at, viewed_at
		FROM invitations
		WHERE token = $1
	`
	return r.scanRow(r.DB.QueryRowContext(ctx, query, token))
}

func (r *invitationRepository) ListByHostID(ctx context.Context, hostID string) ([]*domain.Invitation, error) {
	query := `
		SELECT id, host_id, token, title, created_at, updated_at, viewed_at
		FROM invitations
		WHERE host_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, hostID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invs := make([]*domain.Invitation, 0)
	for rows.Next() {
		inv := &domain.Invitation{}
		var viewedNull sql.NullTime
		if err := rows.Scan(&inv.ID, &inv.HostID, &inv.Token, &inv.Title, &inv.CreatedAt, &inv.UpdatedAt, &viewedNull); err != nil {
			return nil, err
		}
		if viewedNull.Valid {
			inv.ViewedAt = &viewedNull.Time
		}
		invs = append(invs, inv)
	}
	return invs, rows.Err()
}

func (r *invitationRepository) MarkViewed(ctx context.Context, id string, viewedAt time.Time) error {
	query := `UPDATE invitations SET viewed_at = $1, updated_at = NOW() WHERE id = $2`
	result, err := r.DB.ExecContext(ctx, query, viewedAt, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
