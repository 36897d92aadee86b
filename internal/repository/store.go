package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/wedding-venue-booking/internal/model"
)

// Store bundles the MySQL repositories behind one value.  Its method set
// is what the booking service and the HTTP handlers consume, and it is
// mirrored by the in-memory store in package memory.
type Store struct {
	Venues       *VenueRepo
	Reservations *ReservationRepo
	Services     *VendorServiceRepo
	Inquiries    *InquiryRepo
}

// NewStore wires every repository to db.
func NewStore(db *sql.DB) *Store {
	return &Store{
		Venues:       NewVenueRepo(db),
		Reservations: NewReservationRepo(db),
		Services:     NewVendorServiceRepo(db),
		Inquiries:    NewInquiryRepo(db),
	}
}

// Venues

func (s *Store) FindVenue(ctx context.Context, id uint64) (*model.Venue, error) {
	return s.Venues.GetByID(ctx, id)
}

func (s *Store) CreateVenue(ctx context.Context, v *model.Venue) error {
	return s.Venues.Create(ctx, v)
}

func (s *Store) ListVenues(ctx context.Context, f model.VenueFilter) ([]model.Venue, error) {
	return s.Venues.List(ctx, f)
}

func (s *Store) ListCities(ctx context.Context) ([]string, error) { return s.Venues.Cities(ctx) }

func (s *Store) UpdateVenue(ctx context.Context, v *model.Venue) error {
	return s.Venues.UpdateByIDAndOwner(ctx, v)
}

func (s *Store) ModerateVenue(ctx context.Context, id uint64, status *model.ModerationStatus, featured *bool) (*model.Venue, error) {
	return s.Venues.Moderate(ctx, id, status, featured)
}

func (s *Store) DeleteVenue(ctx context.Context, id uint64) error { return s.Venues.Delete(ctx, id) }

// Reservations

func (s *Store) ListReservations(ctx context.Context, venueID uint64, statuses []model.ReservationStatus, from *model.Date) ([]model.Reservation, error) {
	return s.Reservations.ListByVenue(ctx, venueID, statuses, from)
}

func (s *Store) InsertReservation(ctx context.Context, r *model.Reservation) error {
	return s.Reservations.Insert(ctx, r)
}

func (s *Store) GetReservation(ctx context.Context, id uint64) (*model.Reservation, error) {
	return s.Reservations.GetByID(ctx, id)
}

func (s *Store) UpdateReservationStatus(ctx context.Context, id uint64, from, to model.ReservationStatus) (*model.Reservation, error) {
	return s.Reservations.UpdateStatus(ctx, id, from, to)
}

func (s *Store) ListReservationViews(ctx context.Context, f model.ReservationFilter) ([]model.ReservationView, error) {
	return s.Reservations.ListViews(ctx, f)
}

// Vendor services

func (s *Store) CreateService(ctx context.Context, vs *model.VendorService) error {
	return s.Services.Create(ctx, vs)
}

func (s *Store) GetService(ctx context.Context, id uint64) (*model.VendorService, error) {
	return s.Services.GetByID(ctx, id)
}

func (s *Store) ListServices(ctx context.Context, f model.ServiceFilter) ([]model.VendorService, error) {
	return s.Services.List(ctx, f)
}

func (s *Store) UpdateService(ctx context.Context, vs *model.VendorService) error {
	return s.Services.UpdateByIDAndOwner(ctx, vs)
}

func (s *Store) ModerateService(ctx context.Context, id uint64, status *model.ModerationStatus, featured *bool) (*model.VendorService, error) {
	return s.Services.Moderate(ctx, id, status, featured)
}

func (s *Store) DeleteService(ctx context.Context, id uint64) error {
	return s.Services.Delete(ctx, id)
}

// Inquiries

func (s *Store) CreateInquiry(ctx context.Context, in *model.Inquiry) error {
	return s.Inquiries.Create(ctx, in)
}

func (s *Store) ListInquiriesForOwner(ctx context.Context, ownerID uint64) ([]model.Inquiry, error) {
	return s.Inquiries.ListForVenueOwner(ctx, ownerID)
}

func (s *Store) MarkInquiryRead(ctx context.Context, id, ownerID uint64) error {
	return s.Inquiries.MarkRead(ctx, id, ownerID)
}
