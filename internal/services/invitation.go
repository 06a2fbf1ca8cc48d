package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"weddinginvites/internal/domain"
)

type invitationService struct {
	invitationRepo domain.InvitationRepository
	guestRepo      domain.GuestRepository
	feed           domain.FeedPublisher
	baseURL        string
}

// NewInvitationService creates an InvitationService with the given repositories.
func NewInvitationService(
	invitationRepo domain.InvitationRepository,
	guestRepo domain.GuestRepository,
	feed domain.FeedPublisher,
	baseURL string,
) domain.InvitationService {
	return &invitationService{
		invitationRepo: invitationRepo,
		guestRepo:      guestRepo,
		feed:           feed,
		baseURL:        baseURL,
	}
}

// newToken returns an opaque routable token. Hyphens are stripped so that the
// token never interferes with the last-hyphen split of combined guest paths.
func newToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func (s *invitationService) CreateInvitation(ctx context.Context, hostID, title string) (*domain.Invitation, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}

	now := time.Now()
	inv := domain.NewInvitation(hostID, newToken(), title, now, now)
	if err := s.invitationRepo.Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("create invitation: %w", err)
	}
	return inv, nil
}

func (s *invitationService) ListMyInvitations(ctx context.Context, hostID string) ([]*domain.Invitation, error) {
	invs, err := s.invitationRepo.ListByHostID(ctx, hostID)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	if invs == nil {
		invs = []*domain.Invitation{}
	}
	return invs, nil
}

// ownedInvitation loads the invitation and checks the host owns it.
func (s *invitationService) ownedInvitation(ctx context.Context, hostID, invitationID string) (*domain.Invitation, error) {
	inv, err := s.invitationRepo.GetByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get invitation: %w", err)
	}
	if inv.HostID != hostID {
		return nil, domain.ErrForbidden
	}
	return inv, nil
}

func (s *invitationService) AddGuest(ctx context.Context, hostID, invitationID, name, phone string) (*domain.Guest, error) {
	if _, err := s.ownedInvitation(ctx, hostID, invitationID); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: guest name is required", domain.ErrInvalidInput)
	}

	g := &domain.Guest{
		InvitationID: invitationID,
		Token:        newToken(),
		Name:         name,
		Phone:        strings.TrimSpace(phone),
		CreatedAt:    time.Now(),
	}
	if err := s.guestRepo.Create(ctx, g); err != nil {
		return nil, fmt.Errorf("create guest: %w", err)
	}
	return g, nil
}

func (s *invitationService) ListGuests(ctx context.Context, hostID, invitationID string) ([]*domain.GuestWithLinks, error) {
	inv, err := s.ownedInvitation(ctx, hostID, invitationID)
	if err != nil {
		return nil, err
	}

	guests, err := s.guestRepo.ListByInvitationID(ctx, invitationID)
	if err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}

	result := make([]*domain.GuestWithLinks, 0, len(guests))
	for _, g := range guests {
		result = append(result, &domain.GuestWithLinks{
			Guest: g,
			Link:  GuestLink(s.baseURL, inv.Token, g.Token),
		})
	}
	return result, nil
}

func (s *invitationService) RemoveGuest(ctx context.Context, hostID, invitationID, guestID string) error {
	if _, err := s.ownedInvitation(ctx, hostID, invitationID); err != nil {
		return err
	}
	if err := s.guestRepo.Delete(ctx, invitationID, guestID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete guest: %w", err)
	}
	return nil
}

func (s *invitationService) ResolveSlug(ctx context.Context, slug string) (*domain.Invitation, *domain.Guest, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, nil, fmt.Errorf("%w: empty slug", domain.ErrInvalidInput)
	}

	invToken, guestToken := SplitGuestPath(slug)
	if guestToken != "" {
		inv, err := s.invitationRepo.GetByToken(ctx, invToken)
		if err == nil {
			guest, err := s.guestRepo.GetByToken(ctx, inv.ID, guestToken)
			if err == nil {
				return inv, guest, nil
			}
			if !errors.Is(err, domain.ErrNotFound) {
				return nil, nil, fmt.Errorf("get guest: %w", err)
			}
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, nil, fmt.Errorf("get invitation: %w", err)
		}
	}

	// Either no hyphen, or the split did not name a known invitation+guest
	// pair: treat the whole segment as an invitation token.
	inv, err := s.invitationRepo.GetByToken(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get invitation: %w", err)
	}
	return inv, nil, nil
}

func (s *invitationService) MarkViewed(ctx context.Context, slug string) error {
	inv, guest, err := s.ResolveSlug(ctx, slug)
	if err != nil {
		return err
	}
	if err := s.invitationRepo.MarkViewed(ctx, inv.ID, time.Now()); err != nil {
		return fmt.Errorf("mark viewed: %w", err)
	}
	payload := map[string]string{}
	if guest != nil {
		payload["guest_id"] = guest.ID
		payload["guest_name"] = guest.Name
	}
	s.feed.Publish(domain.FeedEvent{
		Type:         domain.FeedInvitationViewed,
		InvitationID: inv.ID,
		Payload:      payload,
	})
	return nil
}
