package services

import (
	"context"
	"testing"
	"time"

	"weddinginvites/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedHub_PublishSubscribe(t *testing.T) {
	hub := NewFeedHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := hub.Subscribe(ctx, "inv-1")
	hub.Publish(domain.FeedEvent{Type: domain.FeedWishSubmitted, InvitationID: "inv-1"})

	select {
	case event := <-ch:
		assert.Equal(t, domain.FeedWishSubmitted, event.Type)
		assert.Equal(t, domain.FeedEventSource, event.Source)
		assert.False(t, event.At.IsZero())
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}
}

func TestFeedHub_SubscribersAreScopedByInvitation(t *testing.T) {
	hub := NewFeedHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	other := hub.Subscribe(ctx, "inv-2")
	hub.Publish(domain.FeedEvent{Type: domain.FeedRSVPSubmitted, InvitationID: "inv-1"})

	select {
	case event := <-other:
		t.Fatalf("subscriber of inv-2 got event for %s", event.InvitationID)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestFeedHub_CancelClosesChannel(t *testing.T) {
	hub := NewFeedHub()
	ctx, cancel := context.WithCancel(context.Background())

	ch := hub.Subscribe(ctx, "inv-1")
	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("channel not closed after cancel")
	}

	// Publishing after the subscriber is gone must not panic or block.
	hub.Publish(domain.FeedEvent{Type: domain.FeedWishLiked, InvitationID: "inv-1"})
}

func TestFeedHub_SlowSubscriberMissesEvents(t *testing.T) {
	hub := NewFeedHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := hub.Subscribe(ctx, "inv-1")

	// Overfill the buffer; the surplus is dropped, never blocking Publish.
	for i := 0; i < 40; i++ {
		hub.Publish(domain.FeedEvent{Type: domain.FeedWishSubmitted, InvitationID: "inv-1"})
	}

	received := 0
	for {
		select {
		case <-ch:
			received++
			continue
		default:
		}
		break
	}
	require.Greater(t, received, 0)
	assert.Less(t, received, 40)
}
