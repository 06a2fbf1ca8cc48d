package domain

import (
	"context"
	"time"
)

// Wish is one wishing-wall post.
// swagger:model Wish
type Wish struct {
	ID           string    `json:"id"`
	InvitationID string    `json:"invitation_id"`
	GuestID      string    `json:"guest_id,omitempty"`
	GuestName    string    `json:"guest_name"`
	Message      string    `json:"message"`
	Photo        string    `json:"photo,omitempty"`
	Likes        int       `json:"likes"`
	CreatedAt    time.Time `json:"created_at"`
}

// WishReply is a reply under a wish.
// swagger:model WishReply
type WishReply struct {
	ID        string    `json:"id"`
	WishID    string    `json:"wish_id"`
	GuestName string    `json:"guest_name"`
	Message   string    `json:"message"`
	Likes     int       `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
}

// WishPage is one page of the wishing wall plus the total count.
type WishPage struct {
	Wishes []*Wish
	Total  int
}

// WishRepository defines storage operations for wishes, replies, and likes.
type WishRepository interface {
	Create(ctx context.Context, w *Wish) error
	GetByID(ctx context.Context, id string) (*Wish, error)
	ListByInvitationID(ctx context.Context, invitationID string, p PaginationParams) (*WishPage, error)
	AddLike(ctx context.Context, wishID string) (likes int, err error)
	RemoveLike(ctx context.Context, wishID string) (likes int, err error)
	CreateReply(ctx context.Context, r *WishReply) error
	ListReplies(ctx context.Context, wishID string) ([]*WishReply, error)
}

// WishService defines the wishing-wall submission and feed contract.
type WishService interface {
	// Submit validates the message length and photo size locally before any
	// persistence call; rejects with ErrInvalidInput carrying the reason.
	Submit(ctx context.Context, slug, guestName, message, photo string) (*Wish, error)
	List(ctx context.Context, slug string, p PaginationParams) (*WishPage, error)
	Like(ctx context.Context, wishID string) (int, error)
	Unlike(ctx context.Context, wishID string) (int, error)
	Reply(ctx context.Context, wishID, guestName, message string) (*WishReply, error)
}
