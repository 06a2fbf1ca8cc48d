package services

import (
	"context"
	"sync"
	"time"

	"weddinginvites/internal/domain"
)

// FeedHub fans invitation feed events out to subscribers (the SSE wish feed
// and interaction notifications). It is constructed once in main and handed
// to the services that need it; there is deliberately no package-level
// instance.
type FeedHub struct {
	mu     sync.Mutex
	nextID int
	subs   map[string]map[int]chan domain.FeedEvent
}

// NewFeedHub creates an empty hub.
func NewFeedHub() *FeedHub {
	return &FeedHub{subs: make(map[string]map[int]chan domain.FeedEvent)}
}

// Publish delivers the event to every subscriber of its invitation. Sends are
// non-blocking: a subscriber whose buffer is full misses the event rather
// than stalling the publishing request.
func (h *FeedHub) Publish(event domain.FeedEvent) {
	event.Source = domain.FeedEventSource
	if event.At.IsZero() {
		event.At = time.Now()
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs[event.InvitationID] {
		select {
		case ch <- event:
		default:
		}
	}
}

// Subscribe returns a channel of the invitation's feed events. The channel is
// closed when ctx is cancelled.
func (h *FeedHub) Subscribe(ctx context.Context, invitationID string) <-chan domain.FeedEvent {
	ch := make(chan domain.FeedEvent, 16)

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	if h.subs[invitationID] == nil {
		h.subs[invitationID] = make(map[int]chan domain.FeedEvent)
	}
	h.subs[invitationID][id] = ch
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		delete(h.subs[invitationID], id)
		if len(h.subs[invitationID]) == 0 {
			delete(h.subs, invitationID)
		}
		h.mu.Unlock()
		close(ch)
	}()

	return ch
}
