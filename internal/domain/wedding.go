package domain

import "context"

// Contact is a phone contact shown on the invitation.
// swagger:model Contact
type Contact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// CeremonyEvent is one entry of the wedding programme (haldi, sangeet, ...).
// swagger:model CeremonyEvent
type CeremonyEvent struct {
	Name    string `json:"name"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Venue   string `json:"venue"`
	MapLink string `json:"map_link,omitempty"`
}

// FamilyMember is one person in a family roster.
// swagger:model FamilyMember
type FamilyMember struct {
	Name     string `json:"name"`
	Relation string `json:"relation"`
	Photo    string `json:"photo,omitempty"`
}

// Family is a titled roster of family members (bride side or groom side).
// swagger:model Family
type Family struct {
	Title   string         `json:"title"`
	Members []FamilyMember `json:"members"`
}

// InviteParams is a partial personalization record: only fields that were
// actually supplied (and passed validation) are set. Scalars use pointers so
// "absent" and "empty" stay distinct; collections use nil for absent.
type InviteParams struct {
	BrideName     *string `json:"bride_name,omitempty"`
	GroomName     *string `json:"groom_name,omitempty"`
	WeddingDate   *string `json:"wedding_date,omitempty"`
	WeddingTime   *string `json:"wedding_time,omitempty"`
	CoupleTagline *string `json:"couple_tagline,omitempty"`
	GroomFirst    *bool   `json:"groom_first,omitempty"`
	GuestName     *string `json:"guest_name,omitempty"`
	VenueName     *string `json:"venue_name,omitempty"`
	VenueAddress  *string `json:"venue_address,omitempty"`
	VenueMapLink  *string `json:"venue_map_link,omitempty"`
	EventID       *string `json:"event_id,omitempty"`
	GuestID       *string `json:"guest_id,omitempty"`

	Contacts    []Contact       `json:"contacts,omitempty"`
	Photos      []string        `json:"photos,omitempty"`
	Events      []CeremonyEvent `json:"events,omitempty"`
	BrideFamily *Family         `json:"bride_family,omitempty"`
	GroomFamily *Family         `json:"groom_family,omitempty"`
}

// IsEmpty reports whether no field at all is set.
func (p *InviteParams) IsEmpty() bool {
	if p == nil {
		return true
	}
	return p.BrideName == nil && p.GroomName == nil && p.WeddingDate == nil &&
		p.WeddingTime == nil && p.CoupleTagline == nil && p.GroomFirst == nil &&
		p.GuestName == nil && p.VenueName == nil && p.VenueAddress == nil &&
		p.VenueMapLink == nil && p.EventID == nil && p.GuestID == nil &&
		p.Contacts == nil && p.Photos == nil && p.Events == nil &&
		p.BrideFamily == nil && p.GroomFamily == nil
}

// Merge overlays over on top of base and returns a new record; neither input
// is mutated. A field set in over always wins; fields set only in base are
// carried through.
func Merge(base, over *InviteParams) *InviteParams {
	out := &InviteParams{}
	if base != nil {
		*out = *base
	}
	if over == nil {
		return out
	}
	if over.BrideName != nil {
		out.BrideName = over.BrideName
	}
	if over.GroomName != nil {
		out.GroomName = over.GroomName
	}
	if over.WeddingDate != nil {
		out.WeddingDate = over.WeddingDate
	}
	if over.WeddingTime != nil {
		out.WeddingTime = over.WeddingTime
	}
	if over.CoupleTagline != nil {
		out.CoupleTagline = over.CoupleTagline
	}
	if over.GroomFirst != nil {
		out.GroomFirst = over.GroomFirst
	}
	if over.GuestName != nil {
		out.GuestName = over.GuestName
	}
	if over.VenueName != nil {
		out.VenueName = over.VenueName
	}
	if over.VenueAddress != nil {
		out.VenueAddress = over.VenueAddress
	}
	if over.VenueMapLink != nil {
		out.VenueMapLink = over.VenueMapLink
	}
	if over.EventID != nil {
		out.EventID = over.EventID
	}
	if over.GuestID != nil {
		out.GuestID = over.GuestID
	}
	if over.Contacts != nil {
		out.Contacts = over.Contacts
	}
	if over.Photos != nil {
		out.Photos = over.Photos
	}
	if over.Events != nil {
		out.Events = over.Events
	}
	if over.BrideFamily != nil {
		out.BrideFamily = over.BrideFamily
	}
	if over.GroomFamily != nil {
		out.GroomFamily = over.GroomFamily
	}
	return out
}

// WeddingData is the fully resolved personalization record consumed by the
// presentation layer. Every field is concrete: anything the visit and the
// stored snapshot left unset has been filled with a default.
// swagger:model WeddingData
type WeddingData struct {
	BrideName     string `json:"bride_name"`
	GroomName     string `json:"groom_name"`
	WeddingDate   string `json:"wedding_date"`
	WeddingTime   string `json:"wedding_time"`
	CoupleTagline string `json:"couple_tagline"`
	GroomFirst    bool   `json:"groom_first"`
	GuestName     string `json:"guest_name"`
	VenueName     string `json:"venue_name"`
	VenueAddress  string `json:"venue_address"`
	VenueMapLink  string `json:"venue_map_link"`
	EventID       string `json:"event_id"`
	GuestID       string `json:"guest_id"`

	Contacts    []Contact       `json:"contacts"`
	Photos      []string        `json:"photos"`
	Events      []CeremonyEvent `json:"events"`
	BrideFamily Family          `json:"bride_family"`
	GroomFamily Family          `json:"groom_family"`
}

// FillDefaults turns a merged partial record into a complete WeddingData,
// substituting the built-in placeholder content for every still-missing field.
func FillDefaults(p *InviteParams) *WeddingData {
	d := DefaultWeddingData()
	if p == nil {
		return d
	}
	if p.BrideName != nil {
		d.BrideName = *p.BrideName
	}
	if p.GroomName != nil {
		d.GroomName = *p.GroomName
	}
	if p.WeddingDate != nil {
		d.WeddingDate = *p.WeddingDate
	}
	if p.WeddingTime != nil {
		d.WeddingTime = *p.WeddingTime
	}
	if p.CoupleTagline != nil {
		d.CoupleTagline = *p.CoupleTagline
	}
	if p.GroomFirst != nil {
		d.GroomFirst = *p.GroomFirst
	}
	if p.GuestName != nil {
		d.GuestName = *p.GuestName
	}
	if p.VenueName != nil {
		d.VenueName = *p.VenueName
	}
	if p.VenueAddress != nil {
		d.VenueAddress = *p.VenueAddress
	}
	if p.VenueMapLink != nil {
		d.VenueMapLink = *p.VenueMapLink
	}
	if p.EventID != nil {
		d.EventID = *p.EventID
	}
	if p.GuestID != nil {
		d.GuestID = *p.GuestID
	}
	if p.Contacts != nil {
		d.Contacts = p.Contacts
	}
	if p.Photos != nil {
		d.Photos = p.Photos
	}
	if p.Events != nil {
		d.Events = p.Events
	}
	if p.BrideFamily != nil {
		d.BrideFamily = *p.BrideFamily
	}
	if p.GroomFamily != nil {
		d.GroomFamily = *p.GroomFamily
	}
	return d
}

// DefaultWeddingData returns the placeholder invitation shown when a visit
// carries no personalization at all.
func DefaultWeddingData() *WeddingData {
	return &WeddingData{
		BrideName:     "Priya",
		GroomName:     "Rahul",
		WeddingDate:   "2025-12-07",
		WeddingTime:   "7:00 PM",
		CoupleTagline: "Two souls, one story",
		GroomFirst:    false,
		GuestName:     "",
		VenueName:     "Royal Garden Palace",
		VenueAddress:  "123 Celebration Road, Mumbai",
		VenueMapLink:  "https://maps.google.com/?q=Royal+Garden+Palace",
		EventID:       "",
		GuestID:       "",
		Contacts: []Contact{
			{Name: "Ramesh Sharma", Phone: "+91 98765 43210"},
			{Name: "Suresh Verma", Phone: "+91 87654 32109"},
		},
		Photos: []string{
			"/images/gallery/photo1.jpg",
			"/images/gallery/photo2.jpg",
			"/images/gallery/photo3.jpg",
			"/images/gallery/photo4.jpg",
		},
		Events: []CeremonyEvent{
			{Name: "Mehndi", Date: "2025-12-05", Time: "4:00 PM", Venue: "Family Residence"},
			{Name: "Haldi", Date: "2025-12-06", Time: "10:00 AM", Venue: "Family Residence"},
			{Name: "Sangeet", Date: "2025-12-06", Time: "7:00 PM", Venue: "Royal Garden Palace"},
			{Name: "Wedding Ceremony", Date: "2025-12-07", Time: "7:00 PM", Venue: "Royal Garden Palace"},
		},
		BrideFamily: Family{
			Title: "Bride's Family",
			Members: []FamilyMember{
				{Name: "Anil Kapoor", Relation: "Father", Photo: "/images/family/bride_father.jpg"},
				{Name: "Sunita Kapoor", Relation: "Mother", Photo: "/images/family/bride_mother.jpg"},
			},
		},
		GroomFamily: Family{
			Title: "Groom's Family",
			Members: []FamilyMember{
				{Name: "Vijay Mehra", Relation: "Father", Photo: "/images/family/groom_father.jpg"},
				{Name: "Kavita Mehra", Relation: "Mother", Photo: "/images/family/groom_mother.jpg"},
			},
		},
	}
}

// SnapshotStore persists the last-resolved partial personalization record per
// storage key. It is the server-side stand-in for the original single browser
// storage slot: one JSON snapshot per key, overwritten wholesale.
type SnapshotStore interface {
	// Get returns the stored snapshot for key, or ErrNotFound.
	Get(ctx context.Context, key string) (*InviteParams, error)
	// Put overwrites the snapshot for key.
	Put(ctx context.Context, key string, params *InviteParams) error
}
