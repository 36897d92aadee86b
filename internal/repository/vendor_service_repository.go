package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/wedding-venue-booking/internal/model"
)

// VendorServiceRepo stores wedding vendor listings (photographers,
// florists and so on) in the `services` table.
type VendorServiceRepo struct {
	db *sql.DB
}

// NewVendorServiceRepo constructs a VendorServiceRepo.
func NewVendorServiceRepo(db *sql.DB) *VendorServiceRepo { return &VendorServiceRepo{db: db} }

const serviceColumns = `id, owner_id, name, description, description_sq, description_mk, category,
	location, city, address, price_from_cents, price_to_cents, cover_image, status, is_featured,
	contact_phone, contact_email, website, instagram, created_at, updated_at`

func scanService(s rowScanner) (*model.VendorService, error) {
	var (
		vs                   model.VendorService
		ownerID              sql.NullInt64
		desc, descSQ, descMK sql.NullString
		address, cover       sql.NullString
		priceFrom, priceTo   sql.NullInt64
		phone, email         sql.NullString
		website, instagram   sql.NullString
	)
	err := s.Scan(&vs.ID, &ownerID, &vs.Name, &desc, &descSQ, &descMK, &vs.Category,
		&vs.Location, &vs.City, &address, &priceFrom, &priceTo, &cover, &vs.Status, &vs.IsFeatured,
		&phone, &email, &website, &instagram, &vs.CreatedAt, &vs.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if ownerID.Valid {
		id := uint64(ownerID.Int64)
		vs.OwnerID = &id
	}
	vs.Description = nullString(desc)
	vs.DescriptionSQ = nullString(descSQ)
	vs.DescriptionMK = nullString(descMK)
	vs.Address = nullString(address)
	vs.PriceFromCents = nullInt64(priceFrom)
	vs.PriceToCents = nullInt64(priceTo)
	vs.CoverImage = nullString(cover)
	vs.ContactPhone = nullString(phone)
	vs.ContactEmail = nullString(email)
	vs.Website = nullString(website)
	vs.Instagram = nullString(instagram)
	return &vs, nil
}

// Create inserts a service and reads it back.
func (r *VendorServiceRepo) Create(ctx context.Context, vs *model.VendorService) error {
	if vs.Status == "" {
		vs.Status = model.ModerationPending
	}
	const q = `INSERT INTO services (owner_id, name, description, description_sq, description_mk, category,
	               location, city, address, price_from_cents, price_to_cents, cover_image, status, is_featured,
	               contact_phone, contact_email, website, instagram)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, vs.OwnerID, vs.Name, vs.Description, vs.DescriptionSQ, vs.DescriptionMK, vs.Category,
		vs.Location, vs.City, vs.Address, vs.PriceFromCents, vs.PriceToCents, vs.CoverImage, vs.Status, vs.IsFeatured,
		vs.ContactPhone, vs.ContactEmail, vs.Website, vs.Instagram)
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
	*vs = *got
	return nil
}

// GetByID returns a service or ErrNotFound.
func (r *VendorServiceRepo) GetByID(ctx context.Context, id uint64) (*model.VendorService, error) {
	vs, err := scanService(r.db.QueryRowContext(ctx, `SELECT `+serviceColumns+` FROM services WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return vs, nil
}

// List returns services matching f, featured first then newest.
func (r *VendorServiceRepo) List(ctx context.Context, f model.ServiceFilter) ([]model.VendorService, error) {
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
	if f.Category != "" {
		where = append(where, "category = ?")
		args = append(args, f.Category)
	}
	if c := strings.TrimSpace(f.City); c != "" {
		where = append(where, "city = ?")
		args = append(args, c)
	}
	q := `SELECT ` + serviceColumns + ` FROM services`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY is_featured DESC, created_at DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.VendorService{}
	for rows.Next() {
		vs, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *vs)
	}
	return out, rows.Err()
}

// UpdateByIDAndOwner updates the editable fields of a service owned by
// *vs.OwnerID.  ErrForbidden when someone else owns it.
func (r *VendorServiceRepo) UpdateByIDAndOwner(ctx context.Context, vs *model.VendorService) error {
	existing, err := r.GetByID(ctx, vs.ID)
	if err != nil {
		return err
	}
	if vs.OwnerID == nil || existing.OwnerID == nil || *existing.OwnerID != *vs.OwnerID {
		return ErrForbidden
	}
	const q = `UPDATE services
	           SET name = ?, description = ?, description_sq = ?, description_mk = ?, category = ?,
	               location = ?, city = ?, address = ?, price_from_cents = ?, price_to_cents = ?,
	               cover_image = ?, contact_phone = ?, contact_email = ?, website = ?, instagram = ?,
	               updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND owner_id = ?`
	if _, err := r.db.ExecContext(ctx, q, vs.Name, vs.Description, vs.DescriptionSQ, vs.DescriptionMK, vs.Category,
		vs.Location, vs.City, vs.Address, vs.PriceFromCents, vs.PriceToCents,
		vs.CoverImage, vs.ContactPhone, vs.ContactEmail, vs.Website, vs.Instagram,
		vs.ID, *vs.OwnerID); err != nil {
		return err
	}
	got, err := r.GetByID(ctx, vs.ID)
	if err != nil {
		return err
	}
	*vs = *got
	return nil
}

// Moderate sets status and/or the featured flag; nil leaves a column as is.
func (r *VendorServiceRepo) Moderate(ctx context.Context, id uint64, status *model.ModerationStatus, featured *bool) (*model.VendorService, error) {
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
	if _, err := r.db.ExecContext(ctx, `UPDATE services SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a service.
func (r *VendorServiceRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM services WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
