package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/wedding-venue-booking/internal/model"
)

// InquiryRepo stores contact requests.
type InquiryRepo struct {
	db *sql.DB
}

// NewInquiryRepo constructs an InquiryRepo.
func NewInquiryRepo(db *sql.DB) *InquiryRepo { return &InquiryRepo{db: db} }

// Create inserts an inquiry and fills in its ID and creation time.
func (r *InquiryRepo) Create(ctx context.Context, in *model.Inquiry) error {
	var eventDate any
	if in.EventDate != nil {
		eventDate = string(*in.EventDate)
	}
	const q = `INSERT INTO inquiries (venue_id, service_id, customer_id, name, email, phone, message, event_date, guest_count)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, in.VenueID, in.ServiceID, in.CustomerID, in.Name, in.Email,
		in.Phone, in.Message, eventDate, in.GuestCount)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	in.ID = uint64(id)
	return r.db.QueryRowContext(ctx, `SELECT is_read, created_at FROM inquiries WHERE id = ?`, in.ID).
		Scan(&in.IsRead, &in.CreatedAt)
}

// ListForVenueOwner returns the inquiries addressed to any venue owned by
// ownerID, newest first.
func (r *InquiryRepo) ListForVenueOwner(ctx context.Context, ownerID uint64) ([]model.Inquiry, error) {
	const q = `SELECT i.id, i.venue_id, i.service_id, i.customer_id, i.name, i.email, i.phone, i.message,
	                  DATE_FORMAT(i.event_date, '%Y-%m-%d'), i.guest_count, i.is_read, i.created_at
	           FROM inquiries i
	           JOIN venues v ON v.id = i.venue_id
	           WHERE v.owner_id = ?
	           ORDER BY i.created_at DESC, i.id DESC`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Inquiry{}
	for rows.Next() {
		var (
			in                           model.Inquiry
			venueID, serviceID, customer sql.NullInt64
			phone, eventDate             sql.NullString
			guests                       sql.NullInt32
		)
		if err := rows.Scan(&in.ID, &venueID, &serviceID, &customer, &in.Name, &in.Email, &phone, &in.Message,
			&eventDate, &guests, &in.IsRead, &in.CreatedAt); err != nil {
			return nil, err
		}
		in.VenueID = nullUint64(venueID)
		in.ServiceID = nullUint64(serviceID)
		in.CustomerID = nullUint64(customer)
		in.Phone = nullString(phone)
		if eventDate.Valid {
			d := model.Date(eventDate.String)
			in.EventDate = &d
		}
		if guests.Valid {
			g := int(guests.Int32)
			in.GuestCount = &g
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

// MarkRead flags an inquiry as read when it belongs to one of ownerID's
// venues.  ErrNotFound when missing, ErrForbidden when owned by someone
// else.
func (r *InquiryRepo) MarkRead(ctx context.Context, id, ownerID uint64) error {
	const checkQ = `SELECT v.owner_id FROM inquiries i JOIN venues v ON v.id = i.venue_id WHERE i.id = ?`
	var actualOwner uint64
	if err := r.db.QueryRowContext(ctx, checkQ, id).Scan(&actualOwner); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if actualOwner != ownerID {
		return ErrForbidden
	}
	_, err := r.db.ExecContext(ctx, `UPDATE inquiries SET is_read = TRUE WHERE id = ?`, id)
	return err
}

func nullUint64(ni sql.NullInt64) *uint64 {
	if !ni.Valid {
		return nil
	}
	n := uint64(ni.Int64)
	return &n
}
