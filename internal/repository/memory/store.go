// Package memory is an in-process implementation of the store used by the
// booking service and the HTTP handlers.  It backs STORE_DRIVER=memory for
// local development and the tests.  It enforces the same rules as the
// MySQL schema: at most one pending or confirmed reservation per venue and
// day, and conditional status updates.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/iliyamo/wedding-venue-booking/internal/model"
	"github.com/iliyamo/wedding-venue-booking/internal/repository"
)

type activeKey struct {
	venueID uint64
	date    model.Date
}

// Store holds every entity in maps guarded by one RWMutex.
type Store struct {
	mu           sync.RWMutex
	venues       map[uint64]*model.Venue
	reservations map[uint64]*model.Reservation
	services     map[uint64]*model.VendorService
	inquiries    map[uint64]*model.Inquiry
	active       map[activeKey]uint64 // (venue, day) -> pending/confirmed reservation id
	lastID       uint64
	now          func() time.Time
}

// New returns an empty store.
func New() *Store {
	return &Store{
		venues:       make(map[uint64]*model.Venue),
		reservations: make(map[uint64]*model.Reservation),
		services:     make(map[uint64]*model.VendorService),
		inquiries:    make(map[uint64]*model.Inquiry),
		active:       make(map[activeKey]uint64),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) nextID() uint64 {
	s.lastID++
	return s.lastID
}

func copyVenue(v *model.Venue) *model.Venue {
	c := *v
	c.Amenities = append([]string{}, v.Amenities...)
	return &c
}

// Venues

func (s *Store) CreateVenue(_ context.Context, v *model.Venue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v.Status == "" {
		v.Status = model.ModerationPending
	}
	if v.Amenities == nil {
		v.Amenities = []string{}
	}
	v.ID = s.nextID()
	v.CreatedAt = s.now()
	v.UpdatedAt = v.CreatedAt
	s.venues[v.ID] = copyVenue(v)
	return nil
}

func (s *Store) FindVenue(_ context.Context, id uint64) (*model.Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.venues[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyVenue(v), nil
}

func (s *Store) ListVenues(_ context.Context, f model.VenueFilter) ([]model.Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	search := strings.ToLower(strings.TrimSpace(f.Search))
	city := strings.TrimSpace(f.City)
	out := []model.Venue{}
	for _, v := range s.venues {
		if f.Status != "" && v.Status != f.Status {
			continue
		}
		if f.OwnerID != 0 && v.OwnerID != f.OwnerID {
			continue
		}
		if city != "" && !strings.EqualFold(v.City, city) {
			continue
		}
		if search != "" && !containsFold(search, v.Name, v.City, v.Location) {
			continue
		}
		out = append(out, *copyVenue(v))
	}
	sort.Slice(out, func(i, j int) bool {
		return listedBefore(out[i].IsFeatured, out[j].IsFeatured, out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID)
	})
	return out, nil
}

func (s *Store) ListCities(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := map[string]struct{}{}
	out := []string{}
	for _, v := range s.venues {
		if v.Status != model.ModerationApproved {
			continue
		}
		if _, ok := seen[v.City]; ok {
			continue
		}
		seen[v.City] = struct{}{}
		out = append(out, v.City)
	}
	sort.Strings(out)
	return out, nil
}

func (s *Store) UpdateVenue(_ context.Context, v *model.Venue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.venues[v.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if cur.OwnerID != v.OwnerID {
		return repository.ErrForbidden
	}
	next := copyVenue(v)
	next.Status = cur.Status
	next.IsFeatured = cur.IsFeatured
	next.CreatedAt = cur.CreatedAt
	next.UpdatedAt = s.now()
	s.venues[v.ID] = next
	*v = *copyVenue(next)
	return nil
}

func (s *Store) ModerateVenue(_ context.Context, id uint64, status *model.ModerationStatus, featured *bool) (*model.Venue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.venues[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if status != nil {
		v.Status = *status
	}
	if featured != nil {
		v.IsFeatured = *featured
	}
	v.UpdatedAt = s.now()
	return copyVenue(v), nil
}

func (s *Store) DeleteVenue(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.venues[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.venues, id)
	for rid, r := range s.reservations {
		if r.VenueID == id {
			delete(s.reservations, rid)
			delete(s.active, activeKey{id, r.EventDate})
		}
	}
	for iid, in := range s.inquiries {
		if in.VenueID != nil && *in.VenueID == id {
			delete(s.inquiries, iid)
		}
	}
	return nil
}

// Reservations

func (s *Store) InsertReservation(_ context.Context, r *model.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.venues[r.VenueID]; !ok {
		return repository.ErrNotFound
	}
	key := activeKey{r.VenueID, r.EventDate}
	if r.Status.Active() {
		if _, taken := s.active[key]; taken {
			return repository.ErrDuplicate
		}
	}
	r.ID = s.nextID()
	r.CreatedAt = s.now()
	r.UpdatedAt = r.CreatedAt
	c := *r
	s.reservations[r.ID] = &c
	if r.Status.Active() {
		s.active[key] = r.ID
	}
	return nil
}

func (s *Store) GetReservation(_ context.Context, id uint64) (*model.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reservations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *r
	return &c, nil
}

func (s *Store) ListReservations(_ context.Context, venueID uint64, statuses []model.ReservationStatus, from *model.Date) ([]model.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []model.Reservation{}
	for _, r := range s.reservations {
		if r.VenueID != venueID || !statusIn(r.Status, statuses) {
			continue
		}
		if from != nil && r.EventDate.Before(*from) {
			continue
		}
		out = append(out, *r)
	}
	sortReservations(out, func(i int) *model.Reservation { return &out[i] })
	return out, nil
}

func (s *Store) UpdateReservationStatus(_ context.Context, id uint64, from, to model.ReservationStatus) (*model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reservations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if r.Status != from {
		return nil, repository.ErrStaleStatus
	}
	key := activeKey{r.VenueID, r.EventDate}
	if to.Active() {
		if holder, taken := s.active[key]; taken && holder != id {
			return nil, repository.ErrDuplicate
		}
		s.active[key] = id
	} else if s.active[key] == id {
		delete(s.active, key)
	}
	r.Status = to
	r.UpdatedAt = s.now()
	c := *r
	return &c, nil
}

func (s *Store) ListReservationViews(_ context.Context, f model.ReservationFilter) ([]model.ReservationView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []model.ReservationView{}
	for _, r := range s.reservations {
		v, ok := s.venues[r.VenueID]
		if !ok {
			continue
		}
		if f.CustomerID != 0 && (r.CustomerID == nil || *r.CustomerID != f.CustomerID) {
			continue
		}
		if f.OwnerID != 0 && v.OwnerID != f.OwnerID {
			continue
		}
		if f.VenueID != 0 && r.VenueID != f.VenueID {
			continue
		}
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		out = append(out, model.ReservationView{
			Reservation: *r,
			VenueName:   v.Name,
			VenueCity:   v.City,
			CoverImage:  v.CoverImage,
		})
	}
	sortReservations(out, func(i int) *model.Reservation { return &out[i].Reservation })
	return out, nil
}

// Vendor services

func (s *Store) CreateService(_ context.Context, vs *model.VendorService) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if vs.Status == "" {
		vs.Status = model.ModerationPending
	}
	vs.ID = s.nextID()
	vs.CreatedAt = s.now()
	vs.UpdatedAt = vs.CreatedAt
	c := *vs
	s.services[vs.ID] = &c
	return nil
}

func (s *Store) GetService(_ context.Context, id uint64) (*model.VendorService, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	vs, ok := s.services[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *vs
	return &c, nil
}

func (s *Store) ListServices(_ context.Context, f model.ServiceFilter) ([]model.VendorService, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	city := strings.TrimSpace(f.City)
	out := []model.VendorService{}
	for _, vs := range s.services {
		if f.Status != "" && vs.Status != f.Status {
			continue
		}
		if f.OwnerID != 0 && (vs.OwnerID == nil || *vs.OwnerID != f.OwnerID) {
			continue
		}
		if f.Category != "" && vs.Category != f.Category {
			continue
		}
		if city != "" && !strings.EqualFold(vs.City, city) {
			continue
		}
		out = append(out, *vs)
	}
	sort.Slice(out, func(i, j int) bool {
		return listedBefore(out[i].IsFeatured, out[j].IsFeatured, out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID)
	})
	return out, nil
}

func (s *Store) UpdateService(_ context.Context, vs *model.VendorService) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.services[vs.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if vs.OwnerID == nil || cur.OwnerID == nil || *cur.OwnerID != *vs.OwnerID {
		return repository.ErrForbidden
	}
	next := *vs
	next.Status = cur.Status
	next.IsFeatured = cur.IsFeatured
	next.CreatedAt = cur.CreatedAt
	next.UpdatedAt = s.now()
	s.services[vs.ID] = &next
	*vs = next
	return nil
}

func (s *Store) ModerateService(_ context.Context, id uint64, status *model.ModerationStatus, featured *bool) (*model.VendorService, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	vs, ok := s.services[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if status != nil {
		vs.Status = *status
	}
	if featured != nil {
		vs.IsFeatured = *featured
	}
	vs.UpdatedAt = s.now()
	c := *vs
	return &c, nil
}

func (s *Store) DeleteService(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.services[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.services, id)
	return nil
}

// Inquiries

func (s *Store) CreateInquiry(_ context.Context, in *model.Inquiry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	in.ID = s.nextID()
	in.CreatedAt = s.now()
	c := *in
	s.inquiries[in.ID] = &c
	return nil
}

func (s *Store) ListInquiriesForOwner(_ context.Context, ownerID uint64) ([]model.Inquiry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []model.Inquiry{}
	for _, in := range s.inquiries {
		if in.VenueID == nil {
			continue
		}
		if v, ok := s.venues[*in.VenueID]; ok && v.OwnerID == ownerID {
			out = append(out, *in)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *Store) MarkInquiryRead(_ context.Context, id, ownerID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	in, ok := s.inquiries[id]
	if !ok || in.VenueID == nil {
		return repository.ErrNotFound
	}
	v, ok := s.venues[*in.VenueID]
	if !ok {
		return repository.ErrNotFound
	}
	if v.OwnerID != ownerID {
		return repository.ErrForbidden
	}
	in.IsRead = true
	return nil
}

func statusIn(s model.ReservationStatus, set []model.ReservationStatus) bool {
	if len(set) == 0 {
		return true
	}
	for _, x := range set {
		if x == s {
			return true
		}
	}
	return false
}

// sortReservations orders by event date then id.
func sortReservations[T any](items []T, at func(int) *model.Reservation) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := at(i), at(j)
		if a.EventDate != b.EventDate {
			return a.EventDate.Before(b.EventDate)
		}
		return a.ID < b.ID
	})
}

// listedBefore orders listings featured first, then newest, then by
// descending id.
func listedBefore(featA, featB bool, createdA, createdB time.Time, idA, idB uint64) bool {
	if featA != featB {
		return featA
	}
	if !createdA.Equal(createdB) {
		return createdA.After(createdB)
	}
	return idA > idB
}

func containsFold(needle string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}
