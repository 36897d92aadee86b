package model

import "time"

// ReservationStatus is the lifecycle state of a reservation.  Pending is the
// only non-terminal state.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
)

// ActiveStatuses are the statuses that occupy a venue's date.
var ActiveStatuses = []ReservationStatus{ReservationPending, ReservationConfirmed}

// Valid reports whether s is a known status.
func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationCancelled:
		return true
	}
	return false
}

// Active reports whether s blocks the reservation's date.
func (s ReservationStatus) Active() bool {
	return s == ReservationPending || s == ReservationConfirmed
}

// Terminal reports whether no transition is defined out of s.
func (s ReservationStatus) Terminal() bool {
	return s == ReservationConfirmed || s == ReservationCancelled
}

// Reservation is a customer's request to book a venue for one calendar day.
// The customer fields are a snapshot taken at booking time and are not kept
// in sync with the customer's profile.
//
// Fields:
//
//	CustomerID      : requesting user; nil for anonymous bookings.
//	TotalPriceCents : computed estimate; nil when the venue has no pricing.
type Reservation struct {
	ID              uint64            `json:"id"`
	VenueID         uint64            `json:"venue_id"`
	CustomerID      *uint64           `json:"customer_id,omitempty"`
	EventDate       Date              `json:"event_date"`
	GuestCount      int               `json:"guest_count"`
	TotalPriceCents *int64            `json:"total_price_cents"`
	Status          ReservationStatus `json:"status"`
	CustomerName    string            `json:"customer_name"`
	CustomerEmail   string            `json:"customer_email"`
	CustomerPhone   *string           `json:"customer_phone,omitempty"`
	Notes           *string           `json:"notes,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// ReservationView is a reservation joined with the venue summary shown on
// customer and owner dashboards.
type ReservationView struct {
	Reservation
	VenueName  string  `json:"venue_name"`
	VenueCity  string  `json:"venue_city"`
	CoverImage *string `json:"cover_image,omitempty"`
}

// ReservationFilter selects reservations for dashboards.  Zero values mean
// "any".  Results are ordered by event date ascending.
type ReservationFilter struct {
	CustomerID uint64
	OwnerID    uint64
	VenueID    uint64
	Status     ReservationStatus
}
