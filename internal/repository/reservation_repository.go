package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/wedding-venue-booking/internal/model"
)

// ReservationRepo provides persistence for venue reservations.  The
// reservations table carries a generated column
//
//	active_date = IF(status IN ('pending','confirmed'), event_date, NULL)
//
// with UNIQUE (venue_id, active_date).  NULLs never collide, so the index
// admits any number of cancelled rows per day but at most one active one.
// Inserts that trip the index surface as ErrDuplicate.
//
// Event dates are read back with DATE_FORMAT so that they never pass
// through time.Time and its zone handling.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationColumns = `r.id, r.venue_id, r.customer_id, DATE_FORMAT(r.event_date, '%Y-%m-%d'),
	r.guest_count, r.total_price_cents, r.status, r.customer_name, r.customer_email,
	r.customer_phone, r.notes, r.created_at, r.updated_at`

func scanReservation(s rowScanner, extra ...any) (*model.Reservation, error) {
	var (
		res          model.Reservation
		customerID   sql.NullInt64
		eventDate    string
		total        sql.NullInt64
		phone, notes sql.NullString
	)
	dest := []any{&res.ID, &res.VenueID, &customerID, &eventDate,
		&res.GuestCount, &total, &res.Status, &res.CustomerName, &res.CustomerEmail,
		&phone, &notes, &res.CreatedAt, &res.UpdatedAt}
	if err := s.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	if customerID.Valid {
		id := uint64(customerID.Int64)
		res.CustomerID = &id
	}
	res.EventDate = model.Date(eventDate)
	res.TotalPriceCents = nullInt64(total)
	res.CustomerPhone = nullString(phone)
	res.Notes = nullString(notes)
	return &res, nil
}

// Insert stores a new reservation and reads the row back to populate ID
// and timestamps.  It returns ErrDuplicate when the venue already has an
// active reservation on the same day.
func (r *ReservationRepo) Insert(ctx context.Context, res *model.Reservation) error {
	const q = `INSERT INTO reservations (venue_id, customer_id, event_date, guest_count, total_price_cents,
	               status, customer_name, customer_email, customer_phone, notes)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q, res.VenueID, res.CustomerID, string(res.EventDate), res.GuestCount,
		res.TotalPriceCents, res.Status, res.CustomerName, res.CustomerEmail, res.CustomerPhone, res.Notes)
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	got, err := r.GetByID(ctx, uint64(id))
	if err != nil {
		return err
	}
	*res = *got
	return nil
}

// GetByID returns a reservation or ErrNotFound.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	res, err := scanReservation(r.db.QueryRowContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations r WHERE r.id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return res, nil
}

// ListByVenue returns the venue's reservations whose status is one of
// statuses (all statuses when empty) and, when from is set, whose event
// date is on or after it.  Ordered by event date.
func (r *ReservationRepo) ListByVenue(ctx context.Context, venueID uint64, statuses []model.ReservationStatus, from *model.Date) ([]model.Reservation, error) {
	q := `SELECT ` + reservationColumns + ` FROM reservations r WHERE r.venue_id = ?`
	args := []any{venueID}
	if len(statuses) > 0 {
		q += ` AND r.status IN (?` + strings.Repeat(", ?", len(statuses)-1) + `)`
		for _, s := range statuses {
			args = append(args, s)
		}
	}
	if from != nil {
		q += ` AND r.event_date >= ?`
		args = append(args, string(*from))
	}
	q += ` ORDER BY r.event_date, r.id`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Reservation{}
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus moves a reservation from one status to another inside a
// transaction.  The row is locked with SELECT ... FOR UPDATE; when its
// status is no longer from, ErrStaleStatus is returned and nothing is
// written.  The updated row is returned.
func (r *ReservationRepo) UpdateStatus(ctx context.Context, id uint64, from, to model.ReservationStatus) (*model.Reservation, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var current model.ReservationStatus
	if err := tx.QueryRowContext(ctx, `SELECT status FROM reservations WHERE id = ? FOR UPDATE`, id).Scan(&current); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if current != from {
		return nil, ErrStaleStatus
	}

	const upd = `UPDATE reservations SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND status = ?`
	if _, err := tx.ExecContext(ctx, upd, to, id, from); err != nil {
		if isDuplicate(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	res, err := scanReservation(tx.QueryRowContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations r WHERE r.id = ?`, id))
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return res, nil
}

// ListViews returns reservations joined with their venue's name, city and
// cover image, filtered by f and ordered by event date ascending.
func (r *ReservationRepo) ListViews(ctx context.Context, f model.ReservationFilter) ([]model.ReservationView, error) {
	q := `SELECT ` + reservationColumns + `, v.name, v.city, v.cover_image
	      FROM reservations r
	      JOIN venues v ON v.id = r.venue_id`
	var (
		where []string
		args  []any
	)
	if f.CustomerID != 0 {
		where = append(where, "r.customer_id = ?")
		args = append(args, f.CustomerID)
	}
	if f.OwnerID != 0 {
		where = append(where, "v.owner_id = ?")
		args = append(args, f.OwnerID)
	}
	if f.VenueID != 0 {
		where = append(where, "r.venue_id = ?")
		args = append(args, f.VenueID)
	}
	if f.Status != "" {
		where = append(where, "r.status = ?")
		args = append(args, f.Status)
	}
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY r.event_date, r.id"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.ReservationView{}
	for rows.Next() {
		var (
			view  model.ReservationView
			cover sql.NullString
		)
		res, err := scanReservation(rows, &view.VenueName, &view.VenueCity, &cover)
		if err != nil {
			return nil, err
		}
		view.Reservation = *res
		view.CoverImage = nullString(cover)
		out = append(out, view)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
