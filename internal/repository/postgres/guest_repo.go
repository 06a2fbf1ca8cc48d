package postgres

import (
	"context"
	"database/sql"
	"errors"

	"weddinginvites/internal/domain"
)

type guestRepository struct {
	DB *sql.DB
}

func NewGuestRepository(db *sql.DB) domain.GuestRepository {
	return &guestRepository{
		DB: db,
	}
}

func (r *guestRepository) Create(ctx context.Context, g *domain.Guest) error {
	query := `
		INSERT INTO guests (invitation_id, token, name, phone, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, g.InvitationID, g.Token, g.Name, g.Phone, g.CreatedAt).Scan(&g.ID)
}

func (r *guestRepository) GetByToken(ctx context.Context, invitationID, token string) (*domain.Guest, error) {
	query := `
		SELECT id, invitation_id, token, name, phone, created_at
		FROM guests
		WHERE invitation_id = $1 AND token = $2
	`
	g := &domain.Guest{}
	var phoneNull sql.NullString
	err := r.DB.QueryRowContext(ctx, query, invitationID, token).Scan(
		&g.ID, &g.InvitationID, &g.Token, &g.Name, &phoneNull, &g.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if phoneNull.Valid {
		g.Phone = phoneNull.String
	}
	return g, nil
}

func (r *guestRepository) ListByInvitationID(ctx context.Context, invitationID string) ([]*domain.Guest, error) {
	query := `
		SELECT id, invitation_id, token, name, phone, created_at
		FROM guests
		WHERE invitation_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, invitationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	guests := make([]*domain.Guest, 0)
	for rows.Next() {
		g := &domain.Guest{}
		var phoneNull sql.NullString
		if err := rows.Scan(&g.ID, &g.InvitationID, &g.Token, &g.Name, &phoneNull, &g.CreatedAt); err != nil {
			return nil, err
		}
		if phoneNull.Valid {
			g.Phone = phoneNull.String
		}
		guests = append(guests, g)
	}
	return guests, rows.Err()
}

func (r *guestRepository) Delete(ctx context.Context, invitationID, guestID string) error {
	query := `DELETE FROM guests WHERE invitation_id = $1 AND id = $2`
	result, err := r.DB.ExecContext(ctx, query, invitationID, guestID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
