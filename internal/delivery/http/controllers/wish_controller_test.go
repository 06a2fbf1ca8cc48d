package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"weddinginvites/internal/delivery/http/helpers"
	"weddinginvites/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWishService implements domain.WishService for handler tests.
type fakeWishService struct {
	submitErr    error
	submitResult *domain.Wish
	listErr      error
	listResult   *domain.WishPage
	likeErr      error
	likeResult   int
	unlikeErr    error
	unlikeResult int
	replyErr     error
	replyResult  *domain.WishReply
	lastListP    domain.PaginationParams
}

func (f *fakeWishService) Submit(ctx context.Context, slug, guestName, message, photo string) (*domain.Wish, error) {
	return f.submitResult, f.submitErr
}

func (f *fakeWishService) List(ctx context.Context, slug string, p domain.PaginationParams) (*domain.WishPage, error) {
	f.lastListP = p
	return f.listResult, f.listErr
}

func (f *fakeWishService) Like(ctx context.Context, wishID string) (int, error) {
	return f.likeResult, f.likeErr
}

func (f *fakeWishService) Unlike(ctx context.Context, wishID string) (int, error) {
	return f.unlikeResult, f.unlikeErr
}

func (f *fakeWishService) Reply(ctx context.Context, wishID, guestName, message string) (*domain.WishReply, error) {
	return f.replyResult, f.replyErr
}

// fakeFeedSubscriber serves a fixed event list and closes the channel.
type fakeFeedSubscriber struct {
	events []domain.FeedEvent
}

func (f *fakeFeedSubscriber) Subscribe(ctx context.Context, invitationID string) <-chan domain.FeedEvent {
	ch := make(chan domain.FeedEvent, len(f.events))
	for _, e := range f.events {
		ch <- e
	}
	close(ch)
	return ch
}

func newTestWishController(svc domain.WishService, invitations domain.InvitationService, feed domain.FeedSubscriber) *WishController {
	if feed == nil {
		feed = &fakeFeedSubscriber{}
	}
	return NewWishController(testLogger, svc, invitations, feed)
}

func TestWishController_List(t *testing.T) {
	fake := &fakeWishService{listResult: &domain.WishPage{
		Wishes: []*domain.Wish{{ID: "wish-1", GuestName: "Anita", Message: "Congrats!"}},
		Total:  41,
	}}
	ctrl := newTestWishController(fake, &fakeInvitationService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "http://test/api/invites/abc123/wishes?page=2&page_size=10", nil)
	req.SetPathValue("slug", "abc123")
	rr := httptest.NewRecorder()
	ctrl.List(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, domain.PaginationParams{Page: 2, PageSize: 10}, fake.lastListP)

	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	dataBytes, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	var data WishListData
	require.NoError(t, json.Unmarshal(dataBytes, &data))
	require.Len(t, data.Wishes, 1)
	assert.Equal(t, 41, data.Pagination.Total)
	assert.Equal(t, 5, data.Pagination.TotalPages)
}

func TestWishController_Submit(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		fake       *fakeWishService
		wantStatus int
		wantSubstr string
	}{
		{
			name:       "success",
			body:       `{"guest_name":"Anita","message":"Congrats!"}`,
			fake:       &fakeWishService{submitResult: &domain.Wish{ID: "wish-1", Message: "Congrats!"}},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "empty message",
			body:       `{"guest_name":"Anita","message":"  "}`,
			fake:       &fakeWishService{},
			wantStatus: http.StatusBadRequest,
			wantSubstr: "message is required",
		},
		{
			name: "over length limit",
			body: `{"message":"` + strings.Repeat("x", 300) + `"}`,
			fake: &fakeWishService{
				submitErr: fmt.Errorf("%w: message exceeds 280 characters", domain.ErrInvalidInput),
			},
			wantStatus: http.StatusBadRequest,
			wantSubstr: "280",
		},
		{
			name:       "unknown slug",
			body:       `{"message":"hi"}`,
			fake:       &fakeWishService{submitErr: domain.ErrNotFound},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := newTestWishController(tt.fake, &fakeInvitationService{}, nil)
			req := httptest.NewRequest(http.MethodPost, "http://test/api/invites/abc123/wishes", bytes.NewBufferString(tt.body))
			req.SetPathValue("slug", "abc123")
			rr := httptest.NewRecorder()
			ctrl.Submit(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantSubstr != "" {
				var envelope helpers.APIResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
				require.NotNil(t, envelope.Error)
				assert.Contains(t, envelope.Error.Message, tt.wantSubstr)
			}
		})
	}
}

func TestWishController_LikeUnlike(t *testing.T) {
	t.Run("like", func(t *testing.T) {
		ctrl := newTestWishController(&fakeWishService{likeResult: 4}, &fakeInvitationService{}, nil)
		req := httptest.NewRequest(http.MethodPost, "http://test/api/wishes/wish-1/likes", nil)
		req.SetPathValue("wishID", "wish-1")
		rr := httptest.NewRecorder()
		ctrl.Like(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var envelope helpers.APIResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
		data, ok := envelope.Data.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, float64(4), data["likes"])
	})

	t.Run("unlike unknown wish", func(t *testing.T) {
		ctrl := newTestWishController(&fakeWishService{unlikeErr: domain.ErrNotFound}, &fakeInvitationService{}, nil)
		req := httptest.NewRequest(http.MethodDelete, "http://test/api/wishes/wish-nope/likes", nil)
		req.SetPathValue("wishID", "wish-nope")
		rr := httptest.NewRecorder()
		ctrl.Unlike(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestWishController_Reply(t *testing.T) {
	fake := &fakeWishService{replyResult: &domain.WishReply{ID: "reply-1", WishID: "wish-1", Message: "Thanks!"}}
	ctrl := newTestWishController(fake, &fakeInvitationService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "http://test/api/wishes/wish-1/replies", bytes.NewBufferString(`{"guest_name":"Raj","message":"Thanks!"}`))
	req.SetPathValue("wishID", "wish-1")
	rr := httptest.NewRecorder()
	ctrl.Reply(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
}

func TestWishController_FeedStream(t *testing.T) {
	invitations := &fakeInvitationService{resolveInv: &domain.Invitation{ID: "inv-1", Token: "abc123"}}
	feed := &fakeFeedSubscriber{events: []domain.FeedEvent{
		{Source: domain.FeedEventSource, Type: domain.FeedWishSubmitted, InvitationID: "inv-1", At: time.Now()},
	}}
	ctrl := newTestWishController(&fakeWishService{}, invitations, feed)

	req := httptest.NewRequest(http.MethodGet, "http://test/api/invites/abc123/feed", nil)
	req.SetPathValue("slug", "abc123")
	rr := httptest.NewRecorder()
	ctrl.FeedStream(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/event-stream", rr.Header().Get("Content-Type"))
	body := rr.Body.String()
	assert.Contains(t, body, "event: wish_submitted")
	assert.Contains(t, body, `"invitation_id":"inv-1"`)
}

func TestWishController_FeedStream_UnknownSlug(t *testing.T) {
	ctrl := newTestWishController(&fakeWishService{}, &fakeInvitationService{resolveErr: domain.ErrNotFound}, nil)
	req := httptest.NewRequest(http.MethodGet, "http://test/api/invites/nope/feed", nil)
	req.SetPathValue("slug", "nope")
	rr := httptest.NewRecorder()
	ctrl.FeedStream(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
}
