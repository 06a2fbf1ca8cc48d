package domain

import (
	"context"
	"time"
)

// RSVP field types supported by the dynamic form.
const (
	FieldTypeText     = "text"
	FieldTypeTextarea = "textarea"
	FieldTypeNumber   = "number"
	FieldTypeSelect   = "select"
)

// RSVPField is one descriptor in the admin-configurable ordered list defining
// a single form input.
// swagger:model RSVPField
type RSVPField struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Type     string   `json:"type"`
	Options  []string `json:"options,omitempty"`
	Required bool     `json:"required"`
	Position int      `json:"position"`
}

// RSVPResponse is one submitted RSVP: a flat field-name → value map.
// Duplicate submissions are stored as separate rows (no dedup, see service).
// swagger:model RSVPResponse
type RSVPResponse struct {
	ID           string            `json:"id"`
	InvitationID string            `json:"invitation_id"`
	GuestID      string            `json:"guest_id,omitempty"`
	GuestName    string            `json:"guest_name,omitempty"`
	Answers      map[string]string `json:"answers"`
	CreatedAt    time.Time         `json:"created_at"`
}

// RSVPRepository defines storage for form descriptors and responses.
type RSVPRepository interface {
	ReplaceFields(ctx context.Context, invitationID string, fields []RSVPField) error
	ListFields(ctx context.Context, invitationID string) ([]RSVPField, error)
	CreateResponse(ctx context.Context, resp *RSVPResponse) error
	ListResponses(ctx context.Context, invitationID string) ([]*RSVPResponse, error)
}

// RSVPService defines the RSVP submission contract.
type RSVPService interface {
	// Fields returns the ordered descriptor list for the invitation. When the
	// host never configured one, the built-in default form is returned.
	Fields(ctx context.Context, invitationID string) ([]RSVPField, error)
	ReplaceFields(ctx context.Context, hostID, invitationID string, fields []RSVPField) error
	// Submit validates required fields locally and persists the answer map.
	// Missing required fields reject with ErrInvalidInput listing their labels;
	// no persistence call is attempted in that case.
	Submit(ctx context.Context, slug string, guestName string, answers map[string]string) (*RSVPResponse, error)
	ListResponses(ctx context.Context, hostID, invitationID string) ([]*RSVPResponse, error)
}

// DefaultRSVPFields is the form served when a host has not configured one.
func DefaultRSVPFields() []RSVPField {
	return []RSVPField{
		{Name: "attending", Label: "Will you attend?", Type: FieldTypeSelect, Options: []string{"Yes", "No", "Maybe"}, Required: true, Position: 0},
		{Name: "guest_count", Label: "Number of guests", Type: FieldTypeNumber, Required: false, Position: 1},
		{Name: "message", Label: "Message for the couple", Type: FieldTypeTextarea, Required: false, Position: 2},
	}
}
