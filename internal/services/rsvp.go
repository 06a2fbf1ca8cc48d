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

type rsvpService struct {
	rsvpRepo       domain.RSVPRepository
	invitationRepo domain.InvitationRepository
	invitations    domain.InvitationService
	hostRepo       domain.HostRepository
	email          domain.EmailService
	feed           domain.FeedPublisher
	logger         *slog.Logger
}

// NewRSVPService creates an RSVPService.
func NewRSVPService(
	rsvpRepo domain.RSVPRepository,
	invitationRepo domain.InvitationRepository,
	invitations domain.InvitationService,
	hostRepo domain.HostRepository,
	email domain.EmailService,
	feed domain.FeedPublisher,
	logger *slog.Logger,
) domain.RSVPService {
	return &rsvpService{
		rsvpRepo:       rsvpRepo,
		invitationRepo: invitationRepo,
		invitations:    invitations,
		hostRepo:       hostRepo,
		email:          email,
		feed:           feed,
		logger:         logger,
	}
}

func (s *rsvpService) Fields(ctx context.Context, invitationID string) ([]domain.RSVPField, error) {
	fields, err := s.rsvpRepo.ListFields(ctx, invitationID)
	if err != nil {
		return nil, fmt.Errorf("list rsvp fields: %w", err)
	}
	if len(fields) == 0 {
		return domain.DefaultRSVPFields(), nil
	}
	return fields, nil
}

func (s *rsvpService) ReplaceFields(ctx context.Context, hostID, invitationID string, fields []domain.RSVPField) error {
	inv, err := s.invitationRepo.GetByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get invitation: %w", err)
	}
	if inv.HostID != hostID {
		return domain.ErrForbidden
	}

	for i := range fields {
		fields[i].Name = strings.TrimSpace(fields[i].Name)
		fields[i].Label = strings.TrimSpace(fields[i].Label)
		if fields[i].Name == "" || fields[i].Label == "" {
			return fmt.Errorf("%w: field name and label are required", domain.ErrInvalidInput)
		}
		switch fields[i].Type {
		case domain.FieldTypeText, domain.FieldTypeTextarea, domain.FieldTypeNumber, domain.FieldTypeSelect:
		default:
			return fmt.Errorf("%w: unknown field type %q", domain.ErrInvalidInput, fields[i].Type)
		}
		fields[i].Position = i
	}
	if err := s.rsvpRepo.ReplaceFields(ctx, invitationID, fields); err != nil {
		return fmt.Errorf("replace rsvp fields: %w", err)
	}
	return nil
}

// MissingRequired returns the labels of required fields whose value is empty
// or absent, in descriptor order. An empty result means the submission passes
// the local gate. This is a client-side convenience, not a replacement for
// whatever the storage tier enforces.
func MissingRequired(fields []domain.RSVPField, answers map[string]string) []string {
	var missing []string
	for _, f := range fields {
		if !f.Required {
			continue
		}
		if strings.TrimSpace(answers[f.Name]) == "" {
			missing = append(missing, f.Label)
		}
	}
	return missing
}

func (s *rsvpService) Submit(ctx context.Context, slug, guestName string, answers map[string]string) (*domain.RSVPResponse, error) {
	inv, guest, err := s.invitations.ResolveSlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	fields, err := s.Fields(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	if missing := MissingRequired(fields, answers); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required fields: %s", domain.ErrInvalidInput, strings.Join(missing, ", "))
	}

	// Keep only answers for declared fields; map semantics already give
	// last-write-wins on duplicate names at decode time.
	declared := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		declared[f.Name] = struct{}{}
	}
	clean := make(map[string]string, len(answers))
	for name, value := range answers {
		if _, ok := declared[name]; ok {
			clean[name] = strings.TrimSpace(value)
		}
	}

	resp := &domain.RSVPResponse{
		InvitationID: inv.ID,
		GuestName:    strings.TrimSpace(guestName),
		Answers:      clean,
		CreatedAt:    time.Now(),
	}
	if guest != nil {
		resp.GuestID = guest.ID
		if resp.GuestName == "" {
			resp.GuestName = guest.Name
		}
	}

	// Resubmission of identical content produces a second record; an
	// idempotency nonce would need collaborator-side schema support.
	if err := s.rsvpRepo.CreateResponse(ctx, resp); err != nil {
		return nil, fmt.Errorf("create rsvp response: %w", err)
	}

	s.feed.Publish(domain.FeedEvent{
		Type:         domain.FeedRSVPSubmitted,
		InvitationID: inv.ID,
		Payload:      map[string]string{"guest_name": resp.GuestName},
	})
	s.notifyHost(ctx, inv, resp)

	return resp, nil
}

// notifyHost emails the host about a new RSVP. Failures are logged and never
// bubble up to the guest-facing request.
func (s *rsvpService) notifyHost(ctx context.Context, inv *domain.Invitation, resp *domain.RSVPResponse) {
	host, err := s.hostRepo.GetByID(ctx, inv.HostID)
	if err != nil {
		s.logger.Warn("skipping rsvp notification, host lookup failed", "invitation_id", inv.ID, "err", err)
		return
	}
	data := &domain.RSVPNotificationEmailData{
		HostName:        host.Name,
		InvitationTitle: inv.Title,
		GuestName:       resp.GuestName,
		Answers:         resp.Answers,
	}
	if err := s.email.SendRSVPNotification(ctx, host.Email, data); err != nil {
		s.logger.Warn("rsvp notification email failed", "invitation_id", inv.ID, "err", err)
	}
}

func (s *rsvpService) ListResponses(ctx context.Context, hostID, invitationID string) ([]*domain.RSVPResponse, error) {
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

	responses, err := s.rsvpRepo.ListResponses(ctx, invitationID)
	if err != nil {
		return nil, fmt.Errorf("list rsvp responses: %w", err)
	}
	if responses == nil {
		responses = []*domain.RSVPResponse{}
	}
	return responses, nil
}
