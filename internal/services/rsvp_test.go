package services

import (
	"context"
	"fmt"
	"testing"

	"weddinginvites/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHostRepo is an in-memory HostRepository for tests.
type fakeHostRepo struct {
	byID    map[string]*domain.Host
	byEmail map[string]*domain.Host
	nextID  int
}

func newFakeHostRepo() *fakeHostRepo {
	return &fakeHostRepo{
		byID:    make(map[string]*domain.Host),
		byEmail: make(map[string]*domain.Host),
		nextID:  1,
	}
}

func (f *fakeHostRepo) Create(ctx context.Context, h *domain.Host) error {
	if _, ok := f.byEmail[h.Email]; ok {
		return domain.ErrDuplicateEmail
	}
	h.ID = fmt.Sprintf("host-%d", f.nextID)
	f.nextID++
	f.byID[h.ID] = h
	f.byEmail[h.Email] = h
	return nil
}

func (f *fakeHostRepo) GetByEmail(ctx context.Context, email string) (*domain.Host, error) {
	if h, ok := f.byEmail[email]; ok {
		return h, nil
	}
	return nil, domain.ErrHostNotFound
}

func (f *fakeHostRepo) GetByID(ctx context.Context, id string) (*domain.Host, error) {
	if h, ok := f.byID[id]; ok {
		return h, nil
	}
	return nil, domain.ErrHostNotFound
}

// fakeEmailService records notification sends.
type fakeEmailService struct {
	rsvpSent []string // recipient addresses
	wishSent []string
	err      error
}

func (f *fakeEmailService) SendRSVPNotification(ctx context.Context, to string, data *domain.RSVPNotificationEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.rsvpSent = append(f.rsvpSent, to)
	return nil
}

func (f *fakeEmailService) SendWishNotification(ctx context.Context, to string, data *domain.WishNotificationEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.wishSent = append(f.wishSent, to)
	return nil
}

// fakeRSVPRepo is an in-memory RSVPRepository for tests.
type fakeRSVPRepo struct {
	fields      map[string][]domain.RSVPField
	responses   []*domain.RSVPResponse
	createCalls int
}

func newFakeRSVPRepo() *fakeRSVPRepo {
	return &fakeRSVPRepo{fields: make(map[string][]domain.RSVPField)}
}

func (f *fakeRSVPRepo) ReplaceFields(ctx context.Context, invitationID string, fields []domain.RSVPField) error {
	f.fields[invitationID] = fields
	return nil
}

func (f *fakeRSVPRepo) ListFields(ctx context.Context, invitationID string) ([]domain.RSVPField, error) {
	return f.fields[invitationID], nil
}

func (f *fakeRSVPRepo) CreateResponse(ctx context.Context, resp *domain.RSVPResponse) error {
	f.createCalls++
	resp.ID = "resp-1"
	f.responses = append(f.responses, resp)
	return nil
}

func (f *fakeRSVPRepo) ListResponses(ctx context.Context, invitationID string) ([]*domain.RSVPResponse, error) {
	var out []*domain.RSVPResponse
	for _, r := range f.responses {
		if r.InvitationID == invitationID {
			out = append(out, r)
		}
	}
	return out, nil
}

type rsvpTestEnv struct {
	svc      domain.RSVPService
	rsvpRepo *fakeRSVPRepo
	invRepo  *fakeInvitationRepo
	hostRepo *fakeHostRepo
	email    *fakeEmailService
	feed     *fakeFeed
	inv      *domain.Invitation
	guest    *domain.Guest
	host     *domain.Host
}

func newRSVPTestEnv(t *testing.T) *rsvpTestEnv {
	t.Helper()
	ctx := context.Background()

	invRepo := newFakeInvitationRepo()
	guestRepo := newFakeGuestRepo()
	feed := &fakeFeed{}
	invitations := NewInvitationService(invRepo, guestRepo, feed, testBaseURL)

	hostRepo := newFakeHostRepo()
	host := &domain.Host{Email: "host@example.com", Name: "Priya"}
	require.NoError(t, hostRepo.Create(ctx, host))

	inv, err := invitations.CreateInvitation(ctx, host.ID, "Wedding")
	require.NoError(t, err)
	guest, err := invitations.AddGuest(ctx, host.ID, inv.ID, "Anita", "")
	require.NoError(t, err)

	rsvpRepo := newFakeRSVPRepo()
	email := &fakeEmailService{}
	svc := NewRSVPService(rsvpRepo, invRepo, invitations, hostRepo, email, feed, testLogger)

	return &rsvpTestEnv{
		svc:      svc,
		rsvpRepo: rsvpRepo,
		invRepo:  invRepo,
		hostRepo: hostRepo,
		email:    email,
		feed:     feed,
		inv:      inv,
		guest:    guest,
		host:     host,
	}
}

func TestRSVPService_Fields_DefaultWhenUnconfigured(t *testing.T) {
	env := newRSVPTestEnv(t)
	fields, err := env.svc.Fields(context.Background(), env.inv.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultRSVPFields(), fields)
}

func TestRSVPService_ReplaceFields(t *testing.T) {
	env := newRSVPTestEnv(t)
	ctx := context.Background()

	fields := []domain.RSVPField{
		{Name: "attending", Label: "Attending?", Type: domain.FieldTypeSelect, Options: []string{"Yes", "No"}, Required: true},
		{Name: "song", Label: "Song request", Type: domain.FieldTypeText},
	}
	require.NoError(t, env.svc.ReplaceFields(ctx, env.host.ID, env.inv.ID, fields))

	got, err := env.svc.Fields(ctx, env.inv.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Positions are assigned from list order.
	assert.Equal(t, 0, got[0].Position)
	assert.Equal(t, 1, got[1].Position)
}

func TestRSVPService_ReplaceFields_Validation(t *testing.T) {
	env := newRSVPTestEnv(t)
	ctx := context.Background()

	t.Run("wrong host", func(t *testing.T) {
		err := env.svc.ReplaceFields(ctx, "host-other", env.inv.ID, []domain.RSVPField{
			{Name: "x", Label: "X", Type: domain.FieldTypeText},
		})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("unknown type", func(t *testing.T) {
		err := env.svc.ReplaceFields(ctx, env.host.ID, env.inv.ID, []domain.RSVPField{
			{Name: "x", Label: "X", Type: "checkbox"},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("missing label", func(t *testing.T) {
		err := env.svc.ReplaceFields(ctx, env.host.ID, env.inv.ID, []domain.RSVPField{
			{Name: "x", Label: "  ", Type: domain.FieldTypeText},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestMissingRequired(t *testing.T) {
	fields := []domain.RSVPField{
		{Name: "attending", Label: "Will you attend?", Required: true},
		{Name: "guest_count", Label: "Number of guests", Required: false},
		{Name: "meal", Label: "Meal choice", Required: true},
	}

	tests := []struct {
		name    string
		answers map[string]string
		want    []string
	}{
		{"all present", map[string]string{"attending": "Yes", "meal": "Veg"}, nil},
		{"one missing", map[string]string{"attending": "Yes"}, []string{"Meal choice"}},
		{"whitespace counts as missing", map[string]string{"attending": "  ", "meal": "Veg"}, []string{"Will you attend?"}},
		{"all missing in order", map[string]string{}, []string{"Will you attend?", "Meal choice"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MissingRequired(fields, tt.answers))
		})
	}
}

func TestRSVPService_Submit_MissingRequiredRejectsBeforePersist(t *testing.T) {
	env := newRSVPTestEnv(t)

	_, err := env.svc.Submit(context.Background(), env.inv.Token, "Anita", map[string]string{
		"guest_count": "2",
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "Will you attend?")
	// The local gate fires before any persistence call.
	assert.Equal(t, 0, env.rsvpRepo.createCalls)
	assert.Empty(t, env.feed.published())
	assert.Empty(t, env.email.rsvpSent)
}

func TestRSVPService_Submit(t *testing.T) {
	env := newRSVPTestEnv(t)

	resp, err := env.svc.Submit(context.Background(), env.inv.Token, "Anita", map[string]string{
		"attending":   "Yes",
		"guest_count": " 2 ",
		"undeclared":  "dropped",
	})
	require.NoError(t, err)
	assert.Equal(t, env.inv.ID, resp.InvitationID)
	assert.Equal(t, "Anita", resp.GuestName)
	// Undeclared answers are filtered, declared ones trimmed.
	assert.Equal(t, map[string]string{"attending": "Yes", "guest_count": "2"}, resp.Answers)

	events := env.feed.published()
	require.Len(t, events, 1)
	assert.Equal(t, domain.FeedRSVPSubmitted, events[0].Type)
	assert.Equal(t, []string{"host@example.com"}, env.email.rsvpSent)
}

func TestRSVPService_Submit_GuestSlugFillsName(t *testing.T) {
	env := newRSVPTestEnv(t)

	slug := env.inv.Token + "-" + env.guest.Token
	resp, err := env.svc.Submit(context.Background(), slug, "", map[string]string{"attending": "Yes"})
	require.NoError(t, err)
	assert.Equal(t, env.guest.ID, resp.GuestID)
	assert.Equal(t, "Anita", resp.GuestName)
}

func TestRSVPService_Submit_DuplicateSubmissionsBothStored(t *testing.T) {
	env := newRSVPTestEnv(t)
	ctx := context.Background()

	answers := map[string]string{"attending": "Yes"}
	_, err := env.svc.Submit(ctx, env.inv.Token, "Anita", answers)
	require.NoError(t, err)
	_, err = env.svc.Submit(ctx, env.inv.Token, "Anita", answers)
	require.NoError(t, err)
	assert.Equal(t, 2, env.rsvpRepo.createCalls)
}

func TestRSVPService_Submit_UnknownSlug(t *testing.T) {
	env := newRSVPTestEnv(t)
	_, err := env.svc.Submit(context.Background(), "nosuchtoken", "Anita", map[string]string{"attending": "Yes"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRSVPService_Submit_EmailFailureDoesNotFailSubmit(t *testing.T) {
	env := newRSVPTestEnv(t)
	env.email.err = assert.AnError

	_, err := env.svc.Submit(context.Background(), env.inv.Token, "Anita", map[string]string{"attending": "Yes"})
	require.NoError(t, err)
	assert.Equal(t, 1, env.rsvpRepo.createCalls)
}

func TestRSVPService_ListResponses(t *testing.T) {
	env := newRSVPTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Submit(ctx, env.inv.Token, "Anita", map[string]string{"attending": "Yes"})
	require.NoError(t, err)

	t.Run("owner", func(t *testing.T) {
		responses, err := env.svc.ListResponses(ctx, env.host.ID, env.inv.ID)
		require.NoError(t, err)
		require.Len(t, responses, 1)
		assert.Equal(t, "Anita", responses[0].GuestName)
	})

	t.Run("wrong host", func(t *testing.T) {
		_, err := env.svc.ListResponses(ctx, "host-other", env.inv.ID)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("unknown invitation", func(t *testing.T) {
		_, err := env.svc.ListResponses(ctx, env.host.ID, "inv-nope")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
