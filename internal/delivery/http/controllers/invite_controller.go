package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"weddinginvites/internal/delivery/http/helpers"
	"weddinginvites/internal/delivery/http/middleware"
	"weddinginvites/internal/domain"
	"weddinginvites/internal/services"
)

type InviteController struct {
	Logger       *slog.Logger
	Personalizer *services.Personalizer
	Service      domain.InvitationService
	BaseURL      string
}

func NewInviteController(logger *slog.Logger, personalizer *services.Personalizer, svc domain.InvitationService, baseURL string) *InviteController {
	return &InviteController{
		Logger:       logger,
		Personalizer: personalizer,
		Service:      svc,
		BaseURL:      baseURL,
	}
}

// ResolveSuccessResponse is the success response envelope for GET /api/invites/{slug} (200).
type ResolveSuccessResponse struct {
	Data  *domain.WeddingData `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// Resolve godoc
// @Summary Resolve the personalization record for an invitation visit
// @Description Parses personalization query parameters, folds them into the stored snapshot for the slug, and returns the effective record with defaults filled in. Malformed parameters are dropped, never fatal; an unknown slug still renders defaults.
// @Tags invites
// @Produce json
// @Param slug path string true "Invitation token, optionally suffixed with -guestToken"
// @Param brideName query string false "Bride name"
// @Param groomName query string false "Groom name"
// @Param events query string false "URL-encoded JSON array of ceremony events"
// @Success 200 {object} controllers.ResolveSuccessResponse
// @Router /api/invites/{slug} [get]
func (c *InviteController) Resolve(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing slug")
		return
	}

	// The invitation always renders: an unknown slug just resolves without a
	// per-invitation snapshot.
	storageKey := slug
	if inv, guest, err := c.Service.ResolveSlug(r.Context(), slug); err == nil {
		storageKey = inv.ID
		if guest != nil {
			storageKey = inv.ID + ":" + guest.ID
		}
	} else if !errors.Is(err, domain.ErrNotFound) && !errors.Is(err, domain.ErrInvalidInput) {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}

	data := c.Personalizer.Resolve(r.Context(), storageKey, r.URL.Query())
	helpers.WriteJSONSuccess(w, http.StatusOK, data)
}

// LinksSuccessResponse is the success response envelope for GET /api/invites/{slug}/links (200).
type LinksSuccessResponse struct {
	Data  *domain.InvitationLinks `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

// Links godoc
// @Summary Get the shareable links for an invitation slug
// @Description Returns the general invitation link and, when the slug names a guest, the personalized guest link.
// @Tags invites
// @Produce json
// @Param slug path string true "Invitation token, optionally suffixed with -guestToken"
// @Success 200 {object} controllers.LinksSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/invites/{slug}/links [get]
func (c *InviteController) Links(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	inv, guest, err := c.Service.ResolveSlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "invitation not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}

	links := &domain.InvitationLinks{GeneralLink: services.GeneralLink(c.BaseURL, inv.Token)}
	if guest != nil {
		links.GuestLink = services.GuestLink(c.BaseURL, inv.Token, guest.Token)
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, links)
}

// MarkViewed godoc
// @Summary Record that an invitation was opened
// @Tags invites
// @Produce json
// @Param slug path string true "Invitation token, optionally suffixed with -guestToken"
// @Success 204 "No content"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/invites/{slug}/view [post]
func (c *InviteController) MarkViewed(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if err := c.Service.MarkViewed(r.Context(), slug); err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "invitation not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateInvitationRequest is the request body for POST /api/invitations.
type CreateInvitationRequest struct {
	Title string `json:"title"`
}

// Validate implements helpers.Validator.
func (r *CreateInvitationRequest) Validate() []string {
	if strings.TrimSpace(r.Title) == "" {
		return []string{"title is required"}
	}
	return nil
}

// InvitationSuccessResponse is the success response envelope for POST /api/invitations (201).
type InvitationSuccessResponse struct {
	Data  *domain.Invitation `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// CreateInvitation godoc
// @Summary Create an invitation
// @Tags invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.CreateInvitationRequest true "Invitation title"
// @Success 201 {object} controllers.InvitationSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/invitations [post]
func (c *InviteController) CreateInvitation(w http.ResponseWriter, r *http.Request) {
	var req CreateInvitationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	hostID, ok := middleware.HostIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	inv, err := c.Service.CreateInvitation(r.Context(), hostID, req.Title)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, inv)
}

// ListInvitationsSuccessResponse is the success response envelope for GET /api/invitations (200).
type ListInvitationsSuccessResponse struct {
	Data  []*domain.Invitation `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// ListInvitations godoc
// @Summary List the current host's invitations
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListInvitationsSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/invitations [get]
func (c *InviteController) ListInvitations(w http.ResponseWriter, r *http.Request) {
	hostID, ok := middleware.HostIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	invs, err := c.Service.ListMyInvitations(r.Context(), hostID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, invs)
}

// AddGuestRequest is the request body for POST /api/invitations/{invitationID}/guests.
type AddGuestRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Validate implements helpers.Validator.
func (r *AddGuestRequest) Validate() []string {
	if strings.TrimSpace(r.Name) == "" {
		return []string{"name is required"}
	}
	return nil
}

// GuestSuccessResponse is the success response envelope for POST /api/invitations/{invitationID}/guests (201).
type GuestSuccessResponse struct {
	Data  *domain.Guest     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// AddGuest godoc
// @Summary Add a guest to an invitation
// @Tags invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param invitationID path string true "Invitation ID"
// @Param body body controllers.AddGuestRequest true "Guest name and optional phone"
// @Success 201 {object} controllers.GuestSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/invitations/{invitationID}/guests [post]
func (c *InviteController) AddGuest(w http.ResponseWriter, r *http.Request) {
	invitationID := r.PathValue("invitationID")
	if invitationID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing invitationID")
		return
	}

	var req AddGuestRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	hostID, ok := middleware.HostIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	guest, err := c.Service.AddGuest(r.Context(), hostID, invitationID, req.Name, req.Phone)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, guest)
}

// ListGuestsSuccessResponse is the success response envelope for GET /api/invitations/{invitationID}/guests (200).
type ListGuestsSuccessResponse struct {
	Data  []*domain.GuestWithLinks `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

// ListGuests godoc
// @Summary List an invitation's guests with their personalized links
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param invitationID path string true "Invitation ID"
// @Success 200 {object} controllers.ListGuestsSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/invitations/{invitationID}/guests [get]
func (c *InviteController) ListGuests(w http.ResponseWriter, r *http.Request) {
	invitationID := r.PathValue("invitationID")
	hostID, ok := middleware.HostIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	guests, err := c.Service.ListGuests(r.Context(), hostID, invitationID)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, guests)
}

// RemoveGuest godoc
// @Summary Remove a guest from an invitation
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param invitationID path string true "Invitation ID"
// @Param guestID path string true "Guest ID"
// @Success 204 "No content"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/invitations/{invitationID}/guests/{guestID} [delete]
func (c *InviteController) RemoveGuest(w http.ResponseWriter, r *http.Request) {
	invitationID := r.PathValue("invitationID")
	guestID := r.PathValue("guestID")
	hostID, ok := middleware.HostIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	if err := c.Service.RemoveGuest(r.Context(), hostID, invitationID, guestID); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeServiceError maps sentinel errors to their HTTP responses.
func (c *InviteController) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
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
