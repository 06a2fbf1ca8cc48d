package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"strings"

	"weddinginvites/internal/domain"
	"weddinginvites/internal/sanitize"
)

// decodeParam decodes a JSON-valued query parameter best-effort. Callers log
// the error and drop the field instead of failing the whole resolution.
func decodeParam[T any](raw string) (T, error) {
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return v, err
	}
	return v, nil
}

// contactParam accepts both "phone" and the legacy "number" spelling.
type contactParam struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Number string `json:"number"`
}

// ceremonyEventParam accepts both the plain keys and the legacy uppercase
// spellings still present in already-generated links.
type ceremonyEventParam struct {
	Name    string `json:"name"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Venue   string `json:"venue"`
	MapLink string `json:"mapLink"`

	LegacyName    string `json:"EVENT_NAME"`
	LegacyDate    string `json:"EVENT_DATE"`
	LegacyTime    string `json:"EVENT_TIME"`
	LegacyVenue   string `json:"EVENT_VENUE"`
	LegacyMapLink string `json:"EVENT_VENUE_MAP_LINK"`
}

type familyParam struct {
	Title   string `json:"title"`
	Members []struct {
		Name     string `json:"name"`
		Relation string `json:"relation"`
		Photo    string `json:"photo"`
	} `json:"members"`
}

// Personalizer parses query-string personalization and resolves it against
// the persisted snapshot and the built-in defaults.
type Personalizer struct {
	snapshots domain.SnapshotStore
	logger    *slog.Logger
}

// NewPersonalizer creates a Personalizer backed by the given snapshot store.
func NewPersonalizer(snapshots domain.SnapshotStore, logger *slog.Logger) *Personalizer {
	return &Personalizer{snapshots: snapshots, logger: logger}
}

// ParseQuery extracts a partial personalization record from query parameters.
// Only parameters that are present and pass their validator are set; invalid
// values are dropped with a warning and never surface as empty placeholders.
// Parsing is deterministic: the same query yields an identical record.
func (p *Personalizer) ParseQuery(query url.Values) *domain.InviteParams {
	out := &domain.InviteParams{}

	scalar := func(key string, dst **string) {
		if !query.Has(key) {
			return
		}
		v := sanitize.Text(query.Get(key))
		*dst = &v
	}
	scalar("brideName", &out.BrideName)
	scalar("groomName", &out.GroomName)
	scalar("weddingDate", &out.WeddingDate)
	scalar("weddingTime", &out.WeddingTime)
	scalar("coupleTagline", &out.CoupleTagline)
	scalar("guestName", &out.GuestName)
	scalar("venueName", &out.VenueName)
	scalar("venueAddress", &out.VenueAddress)
	scalar("eventId", &out.EventID)
	scalar("guestId", &out.GuestID)

	if query.Has("groomFirst") {
		v := query.Get("groomFirst") == "true"
		out.GroomFirst = &v
	}

	// URLs are gated by validation, not sanitization.
	if query.Has("venueMapLink") {
		if raw := query.Get("venueMapLink"); sanitize.IsValidURL(raw) {
			out.VenueMapLink = &raw
		}
	}

	if query.Has("contacts") {
		out.Contacts = p.parseContacts(query.Get("contacts"))
	}
	if query.Has("events") {
		out.Events = p.parseEvents(query.Get("events"))
	}
	if query.Has("photos") {
		out.Photos = p.parsePhotos(query.Get("photos"))
	}
	if query.Has("brideFamily") {
		out.BrideFamily = p.parseFamily("brideFamily", query.Get("brideFamily"))
	}
	if query.Has("groomFamily") {
		out.GroomFamily = p.parseFamily("groomFamily", query.Get("groomFamily"))
	}

	return out
}

func (p *Personalizer) parseContacts(raw string) []domain.Contact {
	entries, err := decodeParam[[]contactParam](raw)
	if err != nil {
		p.logger.Warn("dropping malformed contacts parameter", "err", err)
		return nil
	}
	contacts := make([]domain.Contact, 0, len(entries))
	for _, e := range entries {
		phone := e.Phone
		if phone == "" {
			phone = e.Number
		}
		c := domain.Contact{
			Name:  sanitize.Text(e.Name),
			Phone: sanitize.Text(phone),
		}
		// Entries missing their discriminating fields are dropped whole.
		if c.Name == "" || !sanitize.IsValidPhoneNumber(c.Phone) {
			continue
		}
		contacts = append(contacts, c)
	}
	return contacts
}

func (p *Personalizer) parseEvents(raw string) []domain.CeremonyEvent {
	entries, err := decodeParam[[]ceremonyEventParam](raw)
	if err != nil {
		p.logger.Warn("dropping malformed events parameter", "err", err)
		return nil
	}
	events := make([]domain.CeremonyEvent, 0, len(entries))
	for _, e := range entries {
		ev := domain.CeremonyEvent{
			Name:  sanitize.Text(firstNonEmpty(e.Name, e.LegacyName)),
			Date:  sanitize.Text(firstNonEmpty(e.Date, e.LegacyDate)),
			Time:  sanitize.Text(firstNonEmpty(e.Time, e.LegacyTime)),
			Venue: sanitize.Text(firstNonEmpty(e.Venue, e.LegacyVenue)),
		}
		if link := firstNonEmpty(e.MapLink, e.LegacyMapLink); sanitize.IsValidURL(link) {
			ev.MapLink = link
		}
		if ev.Name == "" || ev.Date == "" {
			continue
		}
		events = append(events, ev)
	}
	return events
}

func (p *Personalizer) parsePhotos(raw string) []string {
	urls, err := decodeParam[[]string](raw)
	if err != nil {
		// Legacy links carry photos as a comma-separated list instead of JSON.
		urls = strings.Split(raw, ",")
	}
	photos := make([]string, 0, len(urls))
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if sanitize.IsValidURL(u) {
			photos = append(photos, u)
		}
	}
	return photos
}

func (p *Personalizer) parseFamily(key, raw string) *domain.Family {
	fam, err := decodeParam[familyParam](raw)
	if err != nil {
		p.logger.Warn("dropping malformed family parameter", "param", key, "err", err)
		return nil
	}
	out := &domain.Family{Title: sanitize.Text(fam.Title)}
	for _, m := range fam.Members {
		member := domain.FamilyMember{
			Name:     sanitize.Text(m.Name),
			Relation: sanitize.Text(m.Relation),
		}
		if sanitize.IsValidURL(m.Photo) {
			member.Photo = m.Photo
		}
		if member.Name == "" {
			continue
		}
		out.Members = append(out.Members, member)
	}
	return out
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// Resolve computes the effective personalization record for one page load:
// parse the query, fold newly supplied fields into the stored snapshot, then
// overlay URL data on the snapshot and fill defaults. URL data always wins
// over stored data, stored data over defaults.
//
// Failure semantics: a missing or undecodable snapshot counts as empty, and a
// failed snapshot write is logged but never fails resolution. Rendering the
// invitation must not be blocked by storage.
func (p *Personalizer) Resolve(ctx context.Context, storageKey string, query url.Values) *domain.WeddingData {
	urlData := p.ParseQuery(query)

	stored, err := p.snapshots.Get(ctx, storageKey)
	if err != nil && err != domain.ErrNotFound {
		p.logger.Warn("snapshot read failed, resolving from defaults", "key", storageKey, "err", err)
		stored = nil
	}

	// Accumulate: a visit must not erase fields earlier visits supplied, so
	// the snapshot is rewritten as stored+url rather than url alone.
	if !urlData.IsEmpty() {
		if err := p.snapshots.Put(ctx, storageKey, domain.Merge(stored, urlData)); err != nil {
			p.logger.Warn("snapshot write failed", "key", storageKey, "err", err)
		}
	}

	return domain.FillDefaults(domain.Merge(stored, urlData))
}
