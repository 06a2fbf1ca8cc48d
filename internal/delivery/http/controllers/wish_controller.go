package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"weddinginvites/internal/delivery/http/helpers"
	"weddinginvites/internal/domain"
)

type WishController struct {
	Logger      *slog.Logger
	Service     domain.WishService
	Invitations domain.InvitationService
	Feed        domain.FeedSubscriber
}

func NewWishController(logger *slog.Logger, svc domain.WishService, invitations domain.InvitationService, feed domain.FeedSubscriber) *WishController {
	return &WishController{
		Logger:      logger,
		Service:     svc,
		Invitations: invitations,
		Feed:        feed,
	}
}

// WishListData is the data payload for the paginated wish list.
type WishListData struct {
	Wishes     []*domain.Wish         `json:"wishes"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// WishListSuccessResponse is the success response envelope for GET /api/invites/{slug}/wishes (200).
type WishListSuccessResponse struct {
	Data  *WishListData     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// List godoc
// @Summary List the wishing wall for an invitation
// @Tags wishes
// @Produce json
// @Param slug path string true "Invitation token, optionally suffixed with -guestToken"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.WishListSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/invites/{slug}/wishes [get]
func (c *WishController) List(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	p := helpers.ParsePagination(r)

	page, err := c.Service.List(r.Context(), slug, p)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, &WishListData{
		Wishes:     page.Wishes,
		Pagination: helpers.NewPaginationMeta(p.Page, p.PageSize, page.Total),
	})
}

// SubmitWishRequest is the request body for POST /api/invites/{slug}/wishes.
type SubmitWishRequest struct {
	GuestName string `json:"guest_name"`
	Message   string `json:"message"`
	Photo     string `json:"photo"`
}

// Validate implements helpers.Validator.
func (r *SubmitWishRequest) Validate() []string {
	if strings.TrimSpace(r.Message) == "" {
		return []string{"message is required"}
	}
	return nil
}

// WishSuccessResponse is the success response envelope for POST /api/invites/{slug}/wishes (201).
type WishSuccessResponse struct {
	Data  *domain.Wish      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// Submit godoc
// @Summary Post a wish to the wishing wall
// @Description Rejects messages over the configured length and photos over the byte cap before persisting anything.
// @Tags wishes
// @Accept json
// @Produce json
// @Param slug path string true "Invitation token, optionally suffixed with -guestToken"
// @Param body body controllers.SubmitWishRequest true "Wish message with optional guest name and data-URI photo"
// @Success 201 {object} controllers.WishSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/invites/{slug}/wishes [post]
func (c *WishController) Submit(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	var req SubmitWishRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	wish, err := c.Service.Submit(r.Context(), slug, req.GuestName, req.Message, req.Photo)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, wish)
}

// LikeCountData carries the like counter after a like or unlike.
type LikeCountData struct {
	Likes int `json:"likes"`
}

// LikeSuccessResponse is the success response envelope for wish like endpoints (200).
type LikeSuccessResponse struct {
	Data  *LikeCountData    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// Like godoc
// @Summary Like a wish
// @Tags wishes
// @Produce json
// @Param wishID path string true "Wish ID"
// @Success 200 {object} controllers.LikeSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/wishes/{wishID}/likes [post]
func (c *WishController) Like(w http.ResponseWriter, r *http.Request) {
	likes, err := c.Service.Like(r.Context(), r.PathValue("wishID"))
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, &LikeCountData{Likes: likes})
}

// Unlike godoc
// @Summary Remove a like from a wish
// @Tags wishes
// @Produce json
// @Param wishID path string true "Wish ID"
// @Success 200 {object} controllers.LikeSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/wishes/{wishID}/likes [delete]
func (c *WishController) Unlike(w http.ResponseWriter, r *http.Request) {
	likes, err := c.Service.Unlike(r.Context(), r.PathValue("wishID"))
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, &LikeCountData{Likes: likes})
}

// ReplyRequest is the request body for POST /api/wishes/{wishID}/replies.
type ReplyRequest struct {
	GuestName string `json:"guest_name"`
	Message   string `json:"message"`
}

// Validate implements helpers.Validator.
func (r *ReplyRequest) Validate() []string {
	if strings.TrimSpace(r.Message) == "" {
		return []string{"message is required"}
	}
	return nil
}

// ReplySuccessResponse is the success response envelope for POST /api/wishes/{wishID}/replies (201).
type ReplySuccessResponse struct {
	Data  *domain.WishReply `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// Reply godoc
// @Summary Reply to a wish
// @Tags wishes
// @Accept json
// @Produce json
// @Param wishID path string true "Wish ID"
// @Param body body controllers.ReplyRequest true "Reply message with optional guest name"
// @Success 201 {object} controllers.ReplySuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/wishes/{wishID}/replies [post]
func (c *WishController) Reply(w http.ResponseWriter, r *http.Request) {
	var req ReplyRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	reply, err := c.Service.Reply(r.Context(), r.PathValue("wishID"), req.GuestName, req.Message)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, reply)
}

// Feed godoc
// @Summary Stream an invitation's live feed over server-sent events
// @Description Emits one SSE message per feed event (RSVPs, wishes, likes, replies, views) until the client disconnects.
// @Tags wishes
// @Produce text/event-stream
// @Param slug path string true "Invitation token, optionally suffixed with -guestToken"
// @Success 200 "SSE stream"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/invites/{slug}/feed [get]
func (c *WishController) FeedStream(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	inv, _, err := c.Invitations.ResolveSlug(r.Context(), slug)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	events := c.Feed.Subscribe(r.Context(), inv.ID)
	for event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			c.Logger.Warn("dropping unserializable feed event", "invitation_id", inv.ID, "err", err)
			continue
		}
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, payload)
		flusher.Flush()
	}
}

func (c *WishController) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "not found")
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}
