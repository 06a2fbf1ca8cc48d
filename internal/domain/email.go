package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// RSVPNotificationEmailData holds data for the "new RSVP" email to the host.
type RSVPNotificationEmailData struct {
	HostName        string
	InvitationTitle string
	GuestName       string
	Answers         map[string]string
}

// WishNotificationEmailData holds data for the "new wish" email to the host.
type WishNotificationEmailData struct {
	HostName        string
	InvitationTitle string
	GuestName       string
	Message         string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendRSVPNotification(ctx context.Context, to string, data *RSVPNotificationEmailData) error
	SendWishNotification(ctx context.Context, to string, data *WishNotificationEmailData) error
}
