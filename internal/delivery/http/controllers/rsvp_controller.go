package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"weddinginvites/internal/delivery/http/helpers"
	"weddinginvites/internal/delivery/http/middleware"
	"weddinginvites/internal/domain"
)

type RSVPController struct {
	Logger      *slog.Logger
	Service     domain.RSVPService
	Invitations domain.InvitationService
}

func NewRSVPController(logger *slog.Logger, svc domain.RSVPService, invitations domain.InvitationService) *RSVPController {
	return &RSVPController{
		Logger:      logger,
		Service:     svc,
		Invitations: invitations,
	}
}

// RSVPFieldsSuccessResponse is the success response envelope for GET /api/invites/{slug}/rsvp/fields (200).
type RSVPFieldsSuccessResponse struct {
	Data  []domain.RSVPField `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// Fields godoc
// @Summary Get the RSVP form descriptors for an invitation
// @Description Returns the host-configured field list in display order, or the built-in default form when none was configured.
// @Tags rsvp
// @Produce json
// @Param slug path string true "Invitation token, optionally suffixed with -guestToken"
// @Success 200 {object} controllers.RSVPFieldsSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/invites/{slug}/rsvp/fields [get]
func (c *RSVPController) Fields(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	inv, _, err := c.Invitations.ResolveSlug(r.Context(), slug)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}

	fields, err := c.Service.Fields(r.Context(), inv.ID)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, fields)
}

// SubmitRSVPRequest is the request body for POST /api/invites/{slug}/rsvp.
type SubmitRSVPRequest struct {
	GuestName string            `json:"guest_name"`
	Answers   map[string]string `json:"answers"`
}

// Validate implements helpers.Validator.
func (r *SubmitRSVPRequest) Validate() []string {
	if len(r.Answers) == 0 {
		return []string{"answers are required"}
	}
	return nil
}

// RSVPResponseSuccessResponse is the success response envelope for POST /api/invites/{slug}/rsvp (201).
type RSVPResponseSuccessResponse struct {
	Data  *domain.RSVPResponse `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// Submit godoc
// @Summary Submit an RSVP
// @Description Validates required fields against the invitation's form before persisting. A rejection names the missing field labels.
// @Tags rsvp
// @Accept json
// @Produce json
// @Param slug path string true "Invitation token, optionally suffixed with -guestToken"
// @Param body body controllers.SubmitRSVPRequest true "Guest name and answers keyed by field name"
// @Success 201 {object} controllers.RSVPResponseSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/invites/{slug}/rsvp [post]
func (c *RSVPController) Submit(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	var req SubmitRSVPRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	resp, err := c.Service.Submit(r.Context(), slug, req.GuestName, req.Answers)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, resp)
}

// ReplaceFieldsRequest is the request body for PUT /api/invitations/{invitationID}/rsvp/fields.
type ReplaceFieldsRequest struct {
	Fields []domain.RSVPField `json:"fields"`
}

// Validate implements helpers.Validator.
func (r *ReplaceFieldsRequest) Validate() []string {
	if len(r.Fields) == 0 {
		return []string{"fields are required"}
	}
	return nil
}

// ReplaceFields godoc
// @Summary Replace the RSVP form for an invitation
// @Tags invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param invitationID path string true "Invitation ID"
// @Param body body controllers.ReplaceFieldsRequest true "Complete ordered field list"
// @Success 204 "No content"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/invitations/{invitationID}/rsvp/fields [put]
func (c *RSVPController) ReplaceFields(w http.ResponseWriter, r *http.Request) {
	invitationID := r.PathValue("invitationID")

	var req ReplaceFieldsRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	hostID, ok := middleware.HostIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	if err := c.Service.ReplaceFields(r.Context(), hostID, invitationID, req.Fields); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListResponsesSuccessResponse is the success response envelope for GET /api/invitations/{invitationID}/rsvp/responses (200).
type ListResponsesSuccessResponse struct {
	Data  []*domain.RSVPResponse `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// ListResponses godoc
// @Summary List submitted RSVPs for an invitation
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param invitationID path string true "Invitation ID"
// @Success 200 {object} controllers.ListResponsesSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/invitations/{invitationID}/rsvp/responses [get]
func (c *RSVPController) ListResponses(w http.ResponseWriter, r *http.Request) {
	invitationID := r.PathValue("invitationID")
	hostID, ok := middleware.HostIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	responses, err := c.Service.ListResponses(r.Context(), hostID, invitationID)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, responses)
}

func (c *RSVPController) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "not found")
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}
