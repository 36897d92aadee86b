package repository // repository holds data access logic for domain entities

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/wedding-venue-booking/internal/model"
)

// VenueRepo provides methods to create, retrieve and moderate venues.  It
// embeds a database handle to perform queries and commands.
type VenueRepo struct {
	db *sql.DB // db is the underlying database connection
}

// NewVenueRepo constructs a VenueRepo with the given DB handle.
func NewVenueRepo(db *sql.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

const venueColumns = `id, owner_id, name, description, description_sq, description_mk,
	location, city, address, capacity_min, capacity_max, price_per_guest_cents, base_price_cents,
	amenities, cover_image, status, is_featured, contact_phone, contact_email, created_at, updated_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanVenue(s rowScanner) (*model.Venue, error) {
	var (
		v                    model.Venue
		desc, descSQ, descMK sql.NullString
		address, cover       sql.NullString
		phone, email         sql.NullString
		capMin               sql.NullInt32
		perGuest, base       sql.NullInt64
		amenities            []byte
	)
	err := s.Scan(&v.ID, &v.OwnerID, &v.Name, &desc, &descSQ, &descMK,
		&v.Location, &v.City, &address, &capMin, &v.CapacityMax, &perGuest, &base,
		&amenities, &cover, &v.Status, &v.IsFeatured, &phone, &email, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	v.Description = nullString(desc)
	v.DescriptionSQ = nullString(descSQ)
	v.DescriptionMK = nullString(descMK)
	v.Address = nullString(address)
	v.CoverImage = nullString(cover)
	v.ContactPhone = nullString(phone)
	v.ContactEmail = nullString(email)
	v.PricePerGuestCents = nullInt64(perGuest)
	v.BasePriceCents = nullInt64(base)
	if capMin.Valid {
		n := int(capMin.Int32)
		v.CapacityMin = &n
	}
	v.Amenities = []string{}
	if len(amenities) > 0 {
		if err := json.Unmarshal(amenities, &v.Amenities); err != nil {
			return nil, fmt.Errorf("decode amenities: %w", err)
		}
	}
	return &v, nil
}

// Create inserts a new venue.  The venue must have OwnerID, Name and
// CapacityMax set.  After insert the row is read back so that ID, status
// and timestamps reflect what the database stored.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
	amenities, err := encodeAmenities(v.Amenities)
	if err != nil {
		return err
	}
	if v.Status == "" {
		v.Status = model.ModerationPending
	}
	const q = `INSERT INTO venues (owner_id, name, description, description_sq, description_mk,
	               location, city, address, capacity_min, capacity_max, price_per_guest_cents, base_price_cents,
	               amenities, cover_image, status, is_featured, contact_phone, contact_email)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, v.OwnerID, v.Name, v.Description, v.DescriptionSQ, v.DescriptionMK,
		v.Location, v.City, v.Address, v.CapacityMin, v.CapacityMax, v.PricePerGuestCents, v.BasePriceCents,
		amenities, v.CoverImage, v.Status, v.IsFeatured, v.ContactPhone, v.ContactEmail)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	got, err := r.GetByID(ctx, uint64(id))
	if err != nil {
		return err
	}
	*v = *got
	return nil
}

// GetByID retrieves a venue by its ID regardless of owner or status.  It
// returns ErrNotFound when no row is found.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	v, err := scanVenue(r.db.QueryRowContext(ctx, `SELECT `+venueColumns+` FROM venues WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

// List returns venues matching f.  Featured venues come first, then the
// newest.  Search matches name, city or location as a substring.
func (r *VenueRepo) List(ctx context.Context, f model.VenueFilter) ([]model.Venue, error) {
	var (
		where []string
		args  []any
	)
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, f.Status)
	}
	if f.OwnerID != 0 {
		where = append(where, "owner_id = ?")
		args = append(args, f.OwnerID)
	}
	if c := strings.TrimSpace(f.City); c != "" {
		where = append(where, "city = ?")
		args = append(args, c)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + escapeLike(s) + "%"
		where = append(where, "(name LIKE ? OR city LIKE ? OR location LIKE ?)")
		args = append(args, like, like, like)
	}
	q := `SELECT ` + venueColumns + ` FROM venues`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY is_featured DESC, created_at DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Venue{}
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Cities returns the distinct cities of approved venues in alphabetical
// order.
func (r *VenueRepo) Cities(ctx context.Context) ([]string, error) {
	const q = `SELECT DISTINCT city FROM venues WHERE status = 'approved' ORDER BY city`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// UpdateByIDAndOwner updates the editable venue fields if the venue belongs
// to v.OwnerID.  Status and the featured flag are not editable by owners.
// Returns ErrNotFound when the id does not exist and ErrForbidden when it
// belongs to someone else.
func (r *VenueRepo) UpdateByIDAndOwner(ctx context.Context, v *model.Venue) error {
	existing, err := r.GetByID(ctx, v.ID)
	if err != nil {
		return err
	}
	if existing.OwnerID != v.OwnerID {
		return ErrForbidden
	}
	amenities, err := encodeAmenities(v.Amenities)
	if err != nil {
		return err
	}
	const q = `UPDATE venues
	           SET name = ?, description = ?, description_sq = ?, description_mk = ?,
	               location = ?, city = ?, address = ?, capacity_min = ?, capacity_max = ?,
	               price_per_guest_cents = ?, base_price_cents = ?, amenities = ?, cover_image = ?,
	               contact_phone = ?, contact_email = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND owner_id = ?`
	if _, err := r.db.ExecContext(ctx, q, v.Name, v.Description, v.DescriptionSQ, v.DescriptionMK,
		v.Location, v.City, v.Address, v.CapacityMin, v.CapacityMax,
		v.PricePerGuestCents, v.BasePriceCents, amenities, v.CoverImage,
		v.ContactPhone, v.ContactEmail, v.ID, v.OwnerID); err != nil {
		return err
	}
	got, err := r.GetByID(ctx, v.ID)
	if err != nil {
		return err
	}
	*v = *got
	return nil
}

// Moderate sets the moderation status and/or featured flag of a venue.  A
// nil argument leaves the column unchanged.  The updated venue is returned.
func (r *VenueRepo) Moderate(ctx context.Context, id uint64, status *model.ModerationStatus, featured *bool) (*model.Venue, error) {
	sets := []string{"updated_at = CURRENT_TIMESTAMP"}
	var args []any
	if status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *status)
	}
	if featured != nil {
		sets = append(sets, "is_featured = ?")
		args = append(args, *featured)
	}
	args = append(args, id)
	res, err := r.db.ExecContext(ctx, `UPDATE venues SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// MySQL reports 0 affected rows for no-op updates too, so confirm
		// the row is really missing before failing.
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes a venue.  Reservations and inquiries go with it through
// the schema's cascading foreign keys.
func (r *VenueRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM venues WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func encodeAmenities(a []string) ([]byte, error) {
	if a == nil {
		a = []string{}
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("encode amenities: %w", err)
	}
	return b, nil
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func nullInt64(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	n := ni.Int64
	return &n
}

// escapeLike escapes the LIKE wildcards in s.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
