package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"weddinginvites/internal/domain"
)

// WishLimits bounds guest-submitted wish content. Zero values fall back to
// the defaults below.
type WishLimits struct {
	MaxMessageLength int
	MaxPhotoBytes    int
}

const (
	defaultMaxWishLength     = 280
	defaultMaxWishPhotoBytes = 5 * 1024 * 1024
)

type wishService struct {
	wishRepo    domain.WishRepository
	invitations domain.InvitationService
	hostRepo    domain.HostRepository
	email       domain.EmailService
	feed        domain.FeedPublisher
	limits      WishLimits
	logger      *slog.Logger
}

// NewWishService creates a WishService with the given collaborators and limits.
func NewWishService(
	wishRepo domain.WishRepository,
	invitations domain.InvitationService,
	hostRepo domain.HostRepository,
	email domain.EmailService,
	feed domain.FeedPublisher,
	limits WishLimits,
	logger *slog.Logger,
) domain.WishService {
	if limits.MaxMessageLength <= 0 {
		limits.MaxMessageLength = defaultMaxWishLength
	}
	if limits.MaxPhotoBytes <= 0 {
		limits.MaxPhotoBytes = defaultMaxWishPhotoBytes
	}
	return &wishService{
		wishRepo:    wishRepo,
		invitations: invitations,
		hostRepo:    hostRepo,
		email:       email,
		feed:        feed,
		limits:      limits,
		logger:      logger,
	}
}

func (s *wishService) Submit(ctx context.Context, slug, guestName, message, photo string) (*domain.Wish, error) {
	inv, guest, err := s.invitations.ResolveSlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	// Local gate: nothing reaches the repository until the draft passes.
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("%w: message is required", domain.ErrInvalidInput)
	}
	if n := len([]rune(message)); n > s.limits.MaxMessageLength {
		return nil, fmt.Errorf("%w: message exceeds %d characters", domain.ErrInvalidInput, s.limits.MaxMessageLength)
	}
	if photo != "" {
		if !strings.HasPrefix(photo, "data:") {
			return nil, fmt.Errorf("%w: photo must be a data URL", domain.ErrInvalidInput)
		}
		if len(photo) > s.limits.MaxPhotoBytes {
			return nil, fmt.Errorf("%w: photo exceeds %d bytes", domain.ErrInvalidInput, s.limits.MaxPhotoBytes)
		}
	}

	w := &domain.Wish{
		InvitationID: inv.ID,
		GuestName:    strings.TrimSpace(guestName),
		Message:      message,
		Photo:        photo,
		CreatedAt:    time.Now(),
	}
	if guest != nil {
		w.GuestID = guest.ID
		if w.GuestName == "" {
			w.GuestName = guest.Name
		}
	}
	if w.GuestName == "" {
		w.GuestName = "Guest"
	}

	if err := s.wishRepo.Create(ctx, w); err != nil {
		return nil, fmt.Errorf("create wish: %w", err)
	}

	s.feed.Publish(domain.FeedEvent{
		Type:         domain.FeedWishSubmitted,
		InvitationID: inv.ID,
		Payload:      map[string]string{"wish_id": w.ID, "guest_name": w.GuestName},
	})
	s.notifyHost(ctx, inv, w)

	return w, nil
}

func (s *wishService) notifyHost(ctx context.Context, inv *domain.Invitation, w *domain.Wish) {
	host, err := s.hostRepo.GetByID(ctx, inv.HostID)
	if err != nil {
		s.logger.Warn("skipping wish notification, host lookup failed", "invitation_id", inv.ID, "err", err)
		return
	}
	data := &domain.WishNotificationEmailData{
		HostName:        host.Name,
		InvitationTitle: inv.Title,
		GuestName:       w.GuestName,
		Message:         w.Message,
	}
	if err := s.email.SendWishNotification(ctx, host.Email, data); err != nil {
		s.logger.Warn("wish notification email failed", "invitation_id", inv.ID, "err", err)
	}
}

func (s *wishService) List(ctx context.Context, slug string, p domain.PaginationParams) (*domain.WishPage, error) {
	inv, _, err := s.invitations.ResolveSlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	page, err := s.wishRepo.ListByInvitationID(ctx, inv.ID, p)
	if err != nil {
		return nil, fmt.Errorf("list wishes: %w", err)
	}
	if page.Wishes == nil {
		page.Wishes = []*domain.Wish{}
	}
	return page, nil
}

func (s *wishService) Like(ctx context.Context, wishID string) (int, error) {
	likes, err := s.wishRepo.AddLike(ctx, wishID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("add like: %w", err)
	}

	if w, err := s.wishRepo.GetByID(ctx, wishID); err == nil {
		s.feed.Publish(domain.FeedEvent{
			Type:         domain.FeedWishLiked,
			InvitationID: w.InvitationID,
			Payload:      map[string]any{"wish_id": wishID, "likes": likes},
		})
	}
	return likes, nil
}

func (s *wishService) Unlike(ctx context.Context, wishID string) (int, error) {
	likes, err := s.wishRepo.RemoveLike(ctx, wishID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("remove like: %w", err)
	}
	return likes, nil
}

func (s *wishService) Reply(ctx context.Context, wishID, guestName, message string) (*domain.WishReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("%w: message is required", domain.ErrInvalidInput)
	}
	if n := len([]rune(message)); n > s.limits.MaxMessageLength {
		return nil, fmt.Errorf("%w: message exceeds %d characters", domain.ErrInvalidInput, s.limits.MaxMessageLength)
	}

	w, err := s.wishRepo.GetByID(ctx, wishID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get wish: %w", err)
	}

	guestName = strings.TrimSpace(guestName)
	if guestName == "" {
		guestName = "Guest"
	}
	reply := &domain.WishReply{
		WishID:    wishID,
		GuestName: guestName,
		Message:   message,
		CreatedAt: time.Now(),
	}
	if err := s.wishRepo.CreateReply(ctx, reply); err != nil {
		return nil, fmt.Errorf("create reply: %w", err)
	}

	s.feed.Publish(domain.FeedEvent{
		Type:         domain.FeedWishReplied,
		InvitationID: w.InvitationID,
		Payload:      map[string]string{"wish_id": wishID, "guest_name": guestName},
	})
	return reply, nil
}
