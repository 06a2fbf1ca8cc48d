package domain

import (
	"context"
	"time"
)

// FeedEventSource tags every outbound feed event so embedding pages can tell
// our notifications apart from other message traffic.
const FeedEventSource = "weddinginvites"

// Feed event types emitted by the services.
const (
	FeedInvitationViewed = "invitation_viewed"
	FeedRSVPSubmitted    = "rsvp_submitted"
	FeedWishSubmitted    = "wish_submitted"
	FeedWishLiked        = "wish_liked"
	FeedWishReplied      = "wish_replied"
)

// FeedEvent is one notification on an invitation's live feed.
// swagger:model FeedEvent
type FeedEvent struct {
	Source       string    `json:"source"`
	Type         string    `json:"type"`
	InvitationID string    `json:"invitation_id"`
	Payload      any       `json:"payload,omitempty"`
	At           time.Time `json:"at"`
}

// FeedPublisher publishes events to an invitation's live feed. Publishing
// never blocks the caller; slow subscribers miss events rather than stall a
// guest-facing request.
type FeedPublisher interface {
	Publish(event FeedEvent)
}

// FeedSubscriber delivers an invitation's feed events until ctx is cancelled,
// at which point the returned channel is closed.
type FeedSubscriber interface {
	Subscribe(ctx context.Context, invitationID string) <-chan FeedEvent
}
