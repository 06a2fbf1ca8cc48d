package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"weddinginvites/internal/delivery/http/controllers"
	"weddinginvites/internal/delivery/http/middleware"
	"weddinginvites/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	inviteController *controllers.InviteController,
	rsvpController *controllers.RSVPController,
	wishController *controllers.WishController,
	authController *controllers.AuthController,
	verifier domain.TokenVerifier,
	logger *slog.Logger,
) *http.ServeMux {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(verifier, logger)

	// Guest-facing routes
	mux.HandleFunc("GET /api/invites/{slug}", inviteController.Resolve)
	mux.HandleFunc("GET /api/invites/{slug}/links", inviteController.Links)
	mux.HandleFunc("POST /api/invites/{slug}/view", inviteController.MarkViewed)
	mux.HandleFunc("GET /api/invites/{slug}/rsvp/fields", rsvpController.Fields)
	mux.HandleFunc("POST /api/invites/{slug}/rsvp", rsvpController.Submit)
	mux.HandleFunc("GET /api/invites/{slug}/wishes", wishController.List)
	mux.HandleFunc("POST /api/invites/{slug}/wishes", wishController.Submit)
	mux.HandleFunc("GET /api/invites/{slug}/feed", wishController.FeedStream)
	mux.HandleFunc("POST /api/wishes/{wishID}/likes", wishController.Like)
	mux.HandleFunc("DELETE /api/wishes/{wishID}/likes", wishController.Unlike)
	mux.HandleFunc("POST /api/wishes/{wishID}/replies", wishController.Reply)

	// Host-facing routes
	mux.HandleFunc("POST /api/invitations", requireAuth(inviteController.CreateInvitation))
	mux.HandleFunc("GET /api/invitations", requireAuth(inviteController.ListInvitations))
	mux.HandleFunc("POST /api/invitations/{invitationID}/guests", requireAuth(inviteController.AddGuest))
	mux.HandleFunc("GET /api/invitations/{invitationID}/guests", requireAuth(inviteController.ListGuests))
	mux.HandleFunc("DELETE /api/invitations/{invitationID}/guests/{guestID}", requireAuth(inviteController.RemoveGuest))
	mux.HandleFunc("PUT /api/invitations/{invitationID}/rsvp/fields", requireAuth(rsvpController.ReplaceFields))
	mux.HandleFunc("GET /api/invitations/{invitationID}/rsvp/responses", requireAuth(rsvpController.ListResponses))

	// Auth
	mux.HandleFunc("POST /auth/signup", authController.SignUp)
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
