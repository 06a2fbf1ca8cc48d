package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"weddinginvites/internal/domain"
)

type hostRepository struct {
	DB *sql.DB
}

func NewHostRepository(db *sql.DB) domain.HostRepository {
	return &hostRepository{
		DB: db,
	}
}

func (r *hostRepository) Create(ctx context.Context, h *domain.Host) error {
	query := `
		INSERT INTO hosts (email, name, password_hash, salt, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, h.Email, h.Name, h.PasswordHash, h.Salt, h.CreatedAt, h.UpdatedAt).Scan(&h.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *hostRepository) GetByEmail(ctx context.Context, email string) (*domain.Host, error) {
	query := `
		SELECT id, email, name, password_hash, salt, created_at, updated_at
		FROM hosts
		WHERE email = $1
	`
	h := &domain.Host{}
	err := r.DB.QueryRowContext(ctx, query, email).Scan(
		&h.ID, &h.Email, &h.Name, &h.PasswordHash, &h.Salt, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrHostNotFound
		}
		return nil, err
	}
	return h, nil
}

func (r *hostRepository) GetByID(ctx context.Context, id string) (*domain.Host, error) {
	query := `
		SELECT id, email, name, password_hash, salt, created_at, updated_at
		FROM hosts
		WHERE id = $1
	`
	h := &domain.Host{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&h.ID, &h.Email, &h.Name, &h.PasswordHash, &h.Salt, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrHostNotFound
		}
		return nil, err
	}
	return h, nil
}
