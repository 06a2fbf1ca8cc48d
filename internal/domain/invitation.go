package domain

import (
	"context"
	"time"
)

// Invitation represents one wedding's shareable invitation. Token is the
// opaque, server-assigned identifier that forms the routable path segment.
// swagger:model Invitation
type Invitation struct {
	ID        string     `json:"id"`
	HostID    string     `json:"host_id"`
	Token     string     `json:"token"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	ViewedAt  *time.Time `json:"viewed_at,omitempty"`
}

// NewInvitation returns a new Invitation. ID is set by the repository on create.
func NewInvitation(hostID, token, title string, createdAt, updatedAt time.Time) *Invitation {
	return &Invitation{
		HostID:    hostID,
		Token:     token,
		Title:     title,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// Guest represents a single recipient of a personalized invitation link.
// swagger:model Guest
type Guest struct {
	ID           string    `json:"id"`
	InvitationID string    `json:"invitation_id"`
	Token        string    `json:"token"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// InvitationRepository defines storage operations for invitations.
type InvitationRepository interface {
	Create(ctx context.Context, inv *Invitation) error
	GetByID(ctx context.Context, id string) (*Invitation, error)
	GetByToken(ctx context.Context, token string) (*Invitation, error)
	ListByHostID(ctx context.Context, hostID string) ([]*Invitation, error)
	MarkViewed(ctx context.Context, id string, viewedAt time.Time) error
}

// GuestRepository defines storage operations for guests.
type GuestRepository interface {
	Create(ctx context.Context, g *Guest) error
	GetByToken(ctx context.Context, invitationID, token string) (*Guest, error)
	ListByInvitationID(ctx context.Context, invitationID string) ([]*Guest, error)
	Delete(ctx context.Context, invitationID, guestID string) error
}

// GuestWithLinks bundles a guest with the shareable link derived for them.
type GuestWithLinks struct {
	Guest *Guest `json:"guest"`
	Link  string `json:"link"`
}

// InvitationLinks holds the shareable URLs for one invitation slug.
// swagger:model InvitationLinks
type InvitationLinks struct {
	GeneralLink string `json:"general_link"`
	GuestLink   string `json:"guest_link,omitempty"`
}

// InvitationService defines host-facing invitation and guest management.
type InvitationService interface {
	CreateInvitation(ctx context.Context, hostID, title string) (*Invitation, error)
	ListMyInvitations(ctx context.Context, hostID string) ([]*Invitation, error)
	AddGuest(ctx context.Context, hostID, invitationID, name, phone string) (*Guest, error)
	ListGuests(ctx context.Context, hostID, invitationID string) ([]*GuestWithLinks, error)
	RemoveGuest(ctx context.Context, hostID, invitationID, guestID string) error
	// ResolveSlug splits a combined path segment into invitation and optional
	// guest, verifying both exist. Returns ErrNotFound for unknown tokens.
	ResolveSlug(ctx context.Context, slug string) (*Invitation, *Guest, error)
	// MarkViewed records that the invitation was opened and emits a feed event.
	MarkViewed(ctx context.Context, slug string) error
}
