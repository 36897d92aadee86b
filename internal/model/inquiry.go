package model

import "time"

// Inquiry is a free-form contact request sent to a venue or vendor.  Unlike
// reservations, inquiries never conflict with each other.
type Inquiry struct {
	ID         uint64    `json:"id"`
	VenueID    *uint64   `json:"venue_id,omitempty"`
	ServiceID  *uint64   `json:"service_id,omitempty"`
	CustomerID *uint64   `json:"customer_id,omitempty"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      *string   `json:"phone,omitempty"`
	Message    string    `json:"message"`
	EventDate  *Date     `json:"event_date,omitempty"`
	GuestCount *int      `json:"guest_count,omitempty"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}
