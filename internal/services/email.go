package services

import (
	"context"
	"fmt"
	"log"

	"weddinginvites/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendRSVPNotification emails the host that a new RSVP arrived, using the
// "rsvp_notification" template.
func (s *emailService) SendRSVPNotification(ctx context.Context, to string, data *domain.RSVPNotificationEmailData) error {
	if data == nil {
		return fmt.Errorf("rsvp notification data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("rsvp_notification", data)
	if err != nil {
		return fmt.Errorf("failed to render rsvp_notification template: %w", err)
	}
	if err := s.mailer.Send(to, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send rsvp notification email: %w", err)
	}
	log.Printf("[EMAIL] RSVP notification sent to %s", to)
	return nil
}

// SendWishNotification emails the host that a new wish was posted, using the
// "wish_notification" template.
func (s *emailService) SendWishNotification(ctx context.Context, to string, data *domain.WishNotificationEmailData) error {
	if data == nil {
		return fmt.Errorf("wish notification data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("wish_notification", data)
	if err != nil {
		return fmt.Errorf("failed to render wish_notification template: %w", err)
	}
	if err := s.mailer.Send(to, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send wish notification email: %w", err)
	}
	log.Printf("[EMAIL] Wish notification sent to %s", to)
	return nil
}
