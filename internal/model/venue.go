package model

import "time"

// ModerationStatus gates public visibility of venues and vendor services.
type ModerationStatus string

const (
	ModerationPending  ModerationStatus = "pending"
	ModerationApproved ModerationStatus = "approved"
	ModerationRejected ModerationStatus = "rejected"
)

// Valid reports whether s is a known moderation status.
func (s ModerationStatus) Valid() bool {
	switch s {
	case ModerationPending, ModerationApproved, ModerationRejected:
		return true
	}
	return false
}

// Venue is a bookable wedding hall listed by an owner.  It corresponds to
// a row in the `venues` table.  Prices are integer cents; a nil price means
// the owner did not configure it, which is different from a price of zero.
//
// Fields:
//
//	CapacityMin: advisory lower bound, used as the default guest count.
//	CapacityMax: hard upper bound enforced when booking.
//	Status     : moderation status; only approved venues are public.
//	IsFeatured : admin-controlled promotion flag.
type Venue struct {
	ID                 uint64           `json:"id"`
	OwnerID            uint64           `json:"owner_id"`
	Name               string           `json:"name"`
	Description        *string          `json:"description,omitempty"`
	DescriptionSQ      *string          `json:"description_sq,omitempty"`
	DescriptionMK      *string          `json:"description_mk,omitempty"`
	Location           string           `json:"location"`
	City               string           `json:"city"`
	Address            *string          `json:"address,omitempty"`
	CapacityMin        *int             `json:"capacity_min,omitempty"`
	CapacityMax        int              `json:"capacity_max"`
	PricePerGuestCents *int64           `json:"price_per_guest_cents,omitempty"`
	BasePriceCents     *int64           `json:"base_price_cents,omitempty"`
	Amenities          []string         `json:"amenities"`
	CoverImage         *string          `json:"cover_image,omitempty"`
	Status             ModerationStatus `json:"status"`
	IsFeatured         bool             `json:"is_featured"`
	ContactPhone       *string          `json:"contact_phone,omitempty"`
	ContactEmail       *string          `json:"contact_email,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// DefaultGuestCount is the starting guest count offered for a venue: its
// advisory minimum, or 50 when no minimum is set.
func (v *Venue) DefaultGuestCount() int {
	if v.CapacityMin != nil && *v.CapacityMin > 0 {
		return *v.CapacityMin
	}
	return 50
}

// VenueFilter narrows venue listings.  Zero values mean "no filter".
type VenueFilter struct {
	Status  ModerationStatus
	OwnerID uint64
	City    string
	Search  string
}
