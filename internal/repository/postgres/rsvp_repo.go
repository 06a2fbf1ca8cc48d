package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"weddinginvites/internal/domain"
)

type rsvpRepository struct {
	DB *sql.DB
}

func NewRSVPRepository(db *sql.DB) domain.RSVPRepository {
	return &rsvpRepository{
		DB: db,
	}
}

// ReplaceFields swaps the invitation's whole descriptor list in one
// transaction so readers never observe a half-replaced form.
func (r *rsvpRepository) ReplaceFields(ctx context.Context, invitationID string, fields []domain.RSVPField) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM rsvp_fields WHERE invitation_id = $1`, invitationID); err != nil {
		return err
	}

	query := `
		INSERT INTO rsvp_fields (invitation_id, name, label, type, options, required, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, f := range fields {
		if _, err := tx.ExecContext(ctx, query, invitationID, f.Name, f.Label, f.Type, pq.Array(f.Options), f.Required, f.Position); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *rsvpRepository) ListFields(ctx context.Context, invitationID string) ([]domain.RSVPField, error) {
	query := `
		SELECT name, label, type, options, required, position
		FROM rsvp_fields
		WHERE invitation_id = $1
		ORDER BY position ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, invitationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := make([]domain.RSVPField, 0)
	for rows.Next() {
		var f domain.RSVPField
		if err := rows.Scan(&f.Name, &f.Label, &f.Type, pq.Array(&f.Options), &f.Required, &f.Position); err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, rows.Err()
}

func (r *rsvpRepository) CreateResponse(ctx context.Context, resp *domain.RSVPResponse) error {
	answers, err := json.Marshal(resp.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}
	query := `
		INSERT INTO rsvp_responses (invitation_id, guest_id, guest_name, answers, created_at)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, resp.InvitationID, resp.GuestID, resp.GuestName, answers, resp.CreatedAt).
		Scan(&resp.ID)
}

func (r *rsvpRepository) ListResponses(ctx context.Context, invitationID string) ([]*domain.RSVPResponse, error) {
	query := `
		SELECT id, invitation_id, guest_id, guest_name, answers, created_at
		FROM rsvp_responses
		WHERE invitation_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, invitationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var responses []*domain.RSVPResponse
	for rows.Next() {
		resp := &domain.RSVPResponse{}
		var guestIDNull sql.NullString
		var answers []byte
		if err := rows.Scan(&resp.ID, &resp.InvitationID, &guestIDNull, &resp.GuestName, &answers, &resp.CreatedAt); err != nil {
			return nil, err
		}
		if guestIDNull.Valid {
			resp.GuestID = guestIDNull.String
		}
		if err := json.Unmarshal(answers, &resp.Answers); err != nil {
			return nil, fmt.Errorf("unmarshal answers for response %s: %w", resp.ID, err)
		}
		responses = append(responses, resp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if responses == nil {
		responses = []*domain.RSVPResponse{}
	}
	return responses, nil
}
