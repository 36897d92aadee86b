package service

import (
	"context"
	"errors"

	"github.com/iliyamo/wedding-venue-booking/internal/model"
)

// ReservationStore is the persistence contract the booking core relies on.
// Implementations must enforce at most one pending or confirmed
// reservation per (venue, event date) and report a violation of that rule
// from InsertReservation as repository.ErrDuplicate.
type ReservationStore interface {
	// FindVenue returns repository.ErrNotFound when no venue has the id.
	FindVenue(ctx context.Context, id uint64) (*model.Venue, error)
	// ListReservations returns the venue's reservations whose status is in
	// statuses and, when from is non-nil, whose event date is on or after it.
	ListReservations(ctx context.Context, venueID uint64, statuses []model.ReservationStatus, from *model.Date) ([]model.Reservation, error)
	// InsertReservation stores r and fills in its ID and timestamps.
	InsertReservation(ctx context.Context, r *model.Reservation) error
	// GetReservation returns repository.ErrNotFound when missing.
	GetReservation(ctx context.Context, id uint64) (*model.Reservation, error)
	// UpdateReservationStatus moves the reservation from one status to
	// another and returns the updated row.  It returns
	// repository.ErrStaleStatus when the current status is no longer from.
	UpdateReservationStatus(ctx context.Context, id uint64, from, to model.ReservationStatus) (*model.Reservation, error)
	// ListReservationViews lists reservations joined with venue summaries.
	ListReservationViews(ctx context.Context, f model.ReservationFilter) ([]model.ReservationView, error)
}

// ErrCacheMiss is returned by AvailabilityCache.Get when nothing usable is
// cached.
var ErrCacheMiss = errors.New("cache miss")

// AvailabilityCache memoises the blocked dates of a venue.  Entries are
// tagged with the day they were computed from so a cached result never
// outlives the day it describes.
//
// Every Invalidate bumps the venue's generation.  Callers read Generation
// before loading reservations and pass it to Set, which stores nothing when
// an invalidation happened in between.
type AvailabilityCache interface {
	Get(ctx context.Context, venueID uint64, from model.Date) ([]model.Date, error)
	Generation(ctx context.Context, venueID uint64) (int64, error)
	Set(ctx context.Context, venueID uint64, from model.Date, gen int64, dates []model.Date) error
	Invalidate(ctx context.Context, venueID uint64) error
}

// Reservation lifecycle events.
const (
	EventReservationCreated   = "reservation.created"
	EventReservationConfirmed = "reservation.confirmed"
	EventReservationCancelled = "reservation.cancelled"
)

// EventPublisher announces reservation lifecycle changes to downstream
// consumers (notifications, analytics).  Delivery is best effort.
type EventPublisher interface {
	PublishReservation(ctx context.Context, event string, r *model.Reservation, v *model.Venue) error
}
