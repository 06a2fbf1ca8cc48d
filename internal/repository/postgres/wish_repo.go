package postgres

import (
	"context"
	"database/sql"
	"errors"

	"weddinginvites/internal/domain"
)

type wishRepository struct {
	DB *sql.DB
}

func NewWishRepository(db *sql.DB) domain.WishRepository {
	return &wishRepository{
		DB: db,
	}
}

func (r *wishRepository) Create(ctx context.Context, w *domain.Wish) error {
	query := `
		INSERT INTO wishes (invitation_id, guest_id, guest_name, message, photo, created_at)
		VALUES ($1, NULLIF($2, ''), $3, $4, NULLIF($5, ''), $6)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, w.InvitationID, w.GuestID, w.GuestName, w.Message, w.Photo, w.CreatedAt).
		Scan(&w.ID)
}

func (r *wishRepository) GetByID(ctx context.Context, id string) (*domain.Wish, error) {
	query := `
		SELECT id, invitation_id, guest_id, guest_name, message, photo, likes, created_at
		FROM wishes
		WHERE id = $1
	`
	w := &domain.Wish{}
	var guestIDNull, photoNull sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&w.ID, &w.InvitationID, &guestIDNull, &w.GuestName, &w.Message, &photoNull, &w.Likes, &w.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if guestIDNull.Valid {
		w.GuestID = guestIDNull.String
	}
	if photoNull.Valid {
		w.Photo = photoNull.String
	}
	return w, nil
}

func (r *wishRepository) ListByInvitationID(ctx context.Context, invitationID string, p domain.PaginationParams) (*domain.WishPage, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM wishes WHERE invitation_id = $1`, invitationID).Scan(&total); err != nil {
		return nil, err
	}

	query := `
		SELECT id, invitation_id, guest_id, guest_name, message, photo, likes, created_at
		FROM wishes
		WHERE invitation_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.DB.QueryContext(ctx, query, invitationID, p.PageSize, p.Offset())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	wishes := make([]*domain.Wish, 0)
	for rows.Next() {
		w := &domain.Wish{}
		var guestIDNull, photoNull sql.NullString
		if err := rows.Scan(&w.ID, &w.InvitationID, &guestIDNull, &w.GuestName, &w.Message, &photoNull, &w.Likes, &w.CreatedAt); err != nil {
			return nil, err
		}
		if guestIDNull.Valid {
			w.GuestID = guestIDNull.String
		}
		if photoNull.Valid {
			w.Photo = photoNull.String
		}
		wishes = append(wishes, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &domain.WishPage{Wishes: wishes, Total: total}, nil
}

func (r *wishRepository) AddLike(ctx context.Context, wishID string) (int, error) {
	query := `UPDATE wishes SET likes = likes + 1 WHERE id = $1 RETURNING likes`
	var likes int
	if err := r.DB.QueryRowContext(ctx, query, wishID).Scan(&likes); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, err
	}
	return likes, nil
}

func (r *wishRepository) RemoveLike(ctx context.Context, wishID string) (int, error) {
	query := `UPDATE wishes SET likes = GREATEST(likes - 1, 0) WHERE id = $1 RETURNING likes`
	var likes int
	if err := r.DB.QueryRowContext(ctx, query, wishID).Scan(&likes); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, err
	}
	return likes, nil
}

func (r *wishRepository) CreateReply(ctx context.Context, reply *domain.WishReply) error {
	query := `
		INSERT INTO wish_replies (wish_id, guest_name, message, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, reply.WishID, reply.GuestName, reply.Message, reply.CreatedAt).
		Scan(&reply.ID)
}

func (r *wishRepository) ListReplies(ctx context.Context, wishID string) ([]*domain.WishReply, error) {
	query := `
		SELECT id, wish_id, guest_name, message, likes, created_at
		FROM wish_replies
		WHERE wish_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, wishID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	replies := make([]*domain.WishReply, 0)
	for rows.Next() {
		reply := &domain.WishReply{}
		if err := rows.Scan(&reply.ID, &reply.WishID, &reply.GuestName, &reply.Message, &reply.Likes, &reply.CreatedAt); err != nil {
			return nil, err
		}
		replies = append(replies, reply)
	}
	return replies, rows.Err()
}
