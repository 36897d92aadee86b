// Package queue defines message payloads exchanged over the message broker
// and the RabbitMQ publisher and consumer that carry them.
package queue

import (
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/wedding-venue-booking/internal/model"
)

// ReservationEvent is published whenever a reservation is created,
// confirmed or cancelled.  It contains enough information for downstream
// consumers to log, notify the venue owner or customer, or feed analytics
// without querying the primary database.
type ReservationEvent struct {
	MessageID       string  `json:"message_id"`
	Event           string  `json:"event"`
	ReservationID   uint64  `json:"reservation_id"`
	Status          string  `json:"status"`
	VenueID         uint64  `json:"venue_id"`
	VenueName       string  `json:"venue_name"`
	VenueCity       string  `json:"venue_city"`
	OwnerID         uint64  `json:"owner_id"`
	CustomerID      *uint64 `json:"customer_id,omitempty"`
	CustomerName    string  `json:"customer_name"`
	CustomerEmail   string  `json:"customer_email"`
	EventDate       string  `json:"event_date"`
	GuestCount      int     `json:"guest_count"`
	TotalPriceCents *int64  `json:"total_price_cents,omitempty"`
	OccurredAt      string  `json:"occurred_at"`
}

// NewReservationEvent builds the payload for event from the reservation
// and its venue.  Each call gets a fresh message id.
func NewReservationEvent(event string, r *model.Reservation, v *model.Venue, at time.Time) ReservationEvent {
	ev := ReservationEvent{
		MessageID:       uuid.NewString(),
		Event:           event,
		ReservationID:   r.ID,
		Status:          string(r.Status),
		VenueID:         r.VenueID,
		CustomerID:      r.CustomerID,
		CustomerName:    r.CustomerName,
		CustomerEmail:   r.CustomerEmail,
		EventDate:       r.EventDate.String(),
		GuestCount:      r.GuestCount,
		TotalPriceCents: r.TotalPriceCents,
		OccurredAt:      at.UTC().Format(time.RFC3339),
	}
	if v != nil {
		ev.VenueName = v.Name
		ev.VenueCity = v.City
		ev.OwnerID = v.OwnerID
	}
	return ev
}
