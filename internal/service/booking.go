package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/iliyamo/wedding-venue-booking/internal/model"
	"github.com/iliyamo/wedding-venue-booking/internal/repository"
)

// Options tune the booking flow.
type Options struct {
	// RequireIdentity rejects reservation requests that carry no
	// authenticated identity.  When false, anonymous contact-only bookings
	// are accepted and stored without a customer reference.
	RequireIdentity bool
	// Location defines which calendar day is "today" for availability
	// queries.  Nil means UTC.
	Location *time.Location
}

// ReservationRequest is a booking request as submitted by a customer.
type ReservationRequest struct {
	VenueID       uint64
	EventDate     string
	GuestCount    int
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Notes         string
}

// Quote is a price preview for a venue and guest count.
type Quote struct {
	VenueID         uint64 `json:"venue_id"`
	GuestCount      int    `json:"guest_count"`
	TotalPriceCents *int64 `json:"total_price_cents"`
}

// BookingService implements availability, pricing, reservation creation
// and the reservation status machine on top of a ReservationStore.
type BookingService struct {
	store  ReservationStore
	cache  AvailabilityCache
	events EventPublisher
	logger echo.Logger
	opts   Options
	now    func() time.Time
}

// NewBookingService wires a BookingService.  cache and events may be nil.
func NewBookingService(store ReservationStore, cache AvailabilityCache, events EventPublisher, logger echo.Logger, opts Options) *BookingService {
	if store == nil {
		panic("nil store passed to NewBookingService")
	}
	if logger == nil {
		logger = log.New("booking")
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &BookingService{
		store:  store,
		cache:  cache,
		events: events,
		logger: logger,
		opts:   opts,
		now:    time.Now,
	}
}

// SetClock replaces the time source.  Tests use it to pin "today".
func (s *BookingService) SetClock(now func() time.Time) { s.now = now }

// RequiresIdentity reports whether anonymous bookings are rejected.
func (s *BookingService) RequiresIdentity() bool { return s.opts.RequireIdentity }

func (s *BookingService) today() model.Date {
	return model.DateOf(s.now().In(s.opts.Location))
}

// Availability returns the approved venue's blocked days from today
// onwards in ascending order.
func (s *BookingService) Availability(ctx context.Context, venueID uint64) ([]model.Date, error) {
	if _, err := s.findVisibleVenue(ctx, venueID); err != nil {
		return nil, err
	}
	from := s.today()

	cacheable := s.cache != nil
	var gen int64
	if cacheable {
		dates, err := s.cache.Get(ctx, venueID, from)
		if err == nil {
			return dates, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			s.logger.Warnj(log.JSON{"msg": "availability cache read failed", "venue_id": venueID, "error": err.Error()})
		}
		// The generation must be read before the store so a booking that
		// lands in between makes the Set below a no-op.
		if gen, err = s.cache.Generation(ctx, venueID); err != nil {
			s.logger.Warnj(log.JSON{"msg": "availability cache generation failed", "venue_id": venueID, "error": err.Error()})
			cacheable = false
		}
	}

	list, err := s.store.ListReservations(ctx, venueID, model.ActiveStatuses, &from)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	dates := BlockedDates(list).Sorted()

	if cacheable {
		if err := s.cache.Set(ctx, venueID, from, gen, dates); err != nil {
			s.logger.Warnj(log.JSON{"msg": "availability cache write failed", "venue_id": venueID, "error": err.Error()})
		}
	}
	return dates, nil
}

// Quote previews the price of booking venueID for guests.  A guest count of
// zero uses the venue's default guest count.
func (s *BookingService) Quote(ctx context.Context, venueID uint64, guests int) (*Quote, error) {
	venue, err := s.findVisibleVenue(ctx, venueID)
	if err != nil {
		return nil, err
	}
	if guests == 0 {
		guests = venue.DefaultGuestCount()
	}
	if guests < 1 {
		return nil, fmt.Errorf("%w: guest count must be positive", ErrValidation)
	}
	if guests > venue.CapacityMax {
		return nil, fmt.Errorf("%w: maximum is %d", ErrCapacityExceeded, venue.CapacityMax)
	}
	return &Quote{
		VenueID:         venue.ID,
		GuestCount:      guests,
		TotalPriceCents: EstimatePrice(venue.BasePriceCents, venue.PricePerGuestCents, guests),
	}, nil
}

// CreateReservation validates req and stores it as a pending reservation.
// actor may be nil when anonymous bookings are allowed.
func (s *BookingService) CreateReservation(ctx context.Context, actor *model.Identity, req ReservationRequest) (*model.Reservation, error) {
	if actor == nil && s.opts.RequireIdentity {
		return nil, ErrUnauthorized
	}

	date, err := validateRequest(&req)
	if err != nil {
		return nil, err
	}

	venue, err := s.findVisibleVenue(ctx, req.VenueID)
	if err != nil {
		return nil, err
	}

	if req.GuestCount > venue.CapacityMax {
		return nil, fmt.Errorf("%w: maximum is %d", ErrCapacityExceeded, venue.CapacityMax)
	}

	existing, err := s.store.ListReservations(ctx, venue.ID, model.ActiveStatuses, &date)
	if err != nil {
		return nil, fmt.Errorf("check conflicts: %w", err)
	}
	if BlockedDates(existing).Has(date) {
		return nil, ErrDateConflict
	}

	res := &model.Reservation{
		VenueID:         venue.ID,
		EventDate:       date,
		GuestCount:      req.GuestCount,
		TotalPriceCents: EstimatePrice(venue.BasePriceCents, venue.PricePerGuestCents, req.GuestCount),
		Status:          model.ReservationPending,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   optional(req.CustomerPhone),
		Notes:           optional(req.Notes),
	}
	if actor != nil {
		uid := actor.UserID
		res.CustomerID = &uid
	}

	if err := s.store.InsertReservation(ctx, res); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// another request won the race between our check and insert
			return nil, ErrDateConflict
		}
		return nil, fmt.Errorf("insert reservation: %w", err)
	}

	s.logger.Infoj(log.JSON{
		"msg":            "reservation created",
		"reservation_id": res.ID,
		"venue_id":       res.VenueID,
		"event_date":     res.EventDate,
		"guests":         res.GuestCount,
		"anonymous":      actor == nil,
	})
	s.afterChange(ctx, EventReservationCreated, res, venue)
	return res, nil
}

// Confirm moves a pending reservation to confirmed on behalf of the venue
// owner.
func (s *BookingService) Confirm(ctx context.Context, actor *model.Identity, reservationID uint64) (*model.Reservation, error) {
	return s.transition(ctx, actor, reservationID, model.ReservationConfirmed)
}

// Cancel moves a pending reservation to cancelled on behalf of the venue
// owner, the customer who made it, or an admin.
func (s *BookingService) Cancel(ctx context.Context, actor *model.Identity, reservationID uint64) (*model.Reservation, error) {
	return s.transition(ctx, actor, reservationID, model.ReservationCancelled)
}

func (s *BookingService) transition(ctx context.Context, actor *model.Identity, id uint64, to model.ReservationStatus) (*model.Reservation, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}
	res, err := s.store.GetReservation(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get reservation: %w", err)
	}
	venue, err := s.findVenue(ctx, res.VenueID)
	if err != nil {
		return nil, err
	}
	if err := CheckTransition(actor, venue.OwnerID, res, to); err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateReservationStatus(ctx, id, res.Status, to)
	if err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			return nil, fmt.Errorf("%w: reservation changed concurrently", ErrInvalidTransition)
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update reservation: %w", err)
	}

	s.logger.Infoj(log.JSON{
		"msg":            "reservation status changed",
		"reservation_id": updated.ID,
		"venue_id":       updated.VenueID,
		"status":         updated.Status,
		"actor_id":       actor.UserID,
	})
	event := EventReservationConfirmed
	if to == model.ReservationCancelled {
		event = EventReservationCancelled
	}
	s.afterChange(ctx, event, updated, venue)
	return updated, nil
}

// ListForCustomer returns the actor's own reservations.
func (s *BookingService) ListForCustomer(ctx context.Context, actor *model.Identity, status model.ReservationStatus) ([]model.ReservationView, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}
	return s.store.ListReservationViews(ctx, model.ReservationFilter{CustomerID: actor.UserID, Status: status})
}

// ListForOwner returns reservations on every venue the actor owns.
func (s *BookingService) ListForOwner(ctx context.Context, actor *model.Identity, status model.ReservationStatus) ([]model.ReservationView, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}
	return s.store.ListReservationViews(ctx, model.ReservationFilter{OwnerID: actor.UserID, Status: status})
}

// ListAll returns every reservation.  Admins only.
func (s *BookingService) ListAll(ctx context.Context, actor *model.Identity, status model.ReservationStatus) ([]model.ReservationView, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.store.ListReservationViews(ctx, model.ReservationFilter{Status: status})
}

// afterChange invalidates the venue's cached availability before the call
// returns, then publishes the lifecycle event.  Neither step can fail the
// request: the reservation is already stored.
func (s *BookingService) afterChange(ctx context.Context, event string, res *model.Reservation, venue *model.Venue) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, res.VenueID); err != nil {
			s.logger.Errorj(log.JSON{"msg": "availability cache invalidation failed", "venue_id": res.VenueID, "error": err.Error()})
		}
	}
	if s.events != nil {
		if err := s.events.PublishReservation(ctx, event, res, venue); err != nil {
			s.logger.Warnj(log.JSON{"msg": "publish reservation event failed", "event": event, "reservation_id": res.ID, "error": err.Error()})
		}
	}
}

func (s *BookingService) findVenue(ctx context.Context, id uint64) (*model.Venue, error) {
	venue, err := s.store.FindVenue(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find venue: %w", err)
	}
	return venue, nil
}

// findVisibleVenue is findVenue restricted to approved venues; anything
// else is not public and reads as missing.
func (s *BookingService) findVisibleVenue(ctx context.Context, id uint64) (*model.Venue, error) {
	venue, err := s.findVenue(ctx, id)
	if err != nil {
		return nil, err
	}
	if venue.Status != model.ModerationApproved {
		return nil, ErrNotFound
	}
	return venue, nil
}

// validateRequest trims req in place and checks required fields.
func validateRequest(req *ReservationRequest) (model.Date, error) {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.CustomerEmail = strings.TrimSpace(req.CustomerEmail)
	req.CustomerPhone = strings.TrimSpace(req.CustomerPhone)
	req.Notes = strings.TrimSpace(req.Notes)

	if req.VenueID == 0 {
		return "", fmt.Errorf("%w: venue is required", ErrValidation)
	}
	date, err := model.ParseDate(req.EventDate)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if req.GuestCount < 1 {
		return "", fmt.Errorf("%w: guest count must be positive", ErrValidation)
	}
	if req.CustomerName == "" || req.CustomerEmail == "" {
		return "", fmt.Errorf("%w: name and email are required", ErrValidation)
	}
	addr, err := mail.ParseAddress(req.CustomerEmail)
	if err != nil {
		return "", fmt.Errorf("%w: invalid email", ErrValidation)
	}
	req.CustomerEmail = addr.Address
	return date, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
