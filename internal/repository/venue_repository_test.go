package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/wedding-venue-booking/internal/model"
)

var venueCols = []string{"id", "owner_id", "name", "description", "description_sq", "description_mk",
	"location", "city", "address", "capacity_min", "capacity_max", "price_per_guest_cents", "base_price_cents",
	"amenities", "cover_image", "status", "is_featured", "contact_phone", "contact_email", "created_at", "updated_at"}

func venueRow(id, owner uint64, status string) []driver.Value {
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	return []driver.Value{id, owner, "Crystal Hall", "Big hall", nil, nil,
		"Center", "Tetovo", nil, 80, 300, 2000, nil,
		[]byte(`["parking","garden"]`), nil, status, true, nil, nil, now, now}
}

func TestVenueRepo_GetByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewVenueRepo(db)

	mock.ExpectQuery("SELECT .+ FROM venues WHERE id = \\?").
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows(venueCols).AddRow(venueRow(3, 10, "approved")...))

	v, err := repo.GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Crystal Hall", v.Name)
	require.NotNil(t, v.CapacityMin)
	assert.Equal(t, 80, *v.CapacityMin)
	require.NotNil(t, v.PricePerGuestCents)
	assert.Equal(t, int64(2000), *v.PricePerGuestCents)
	assert.Nil(t, v.BasePriceCents)
	assert.Equal(t, []string{"parking", "garden"}, v.Amenities)
	assert.Equal(t, model.ModerationApproved, v.Status)
}

func TestVenueRepo_GetByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewVenueRepo(db)

	mock.ExpectQuery("SELECT .+ FROM venues WHERE id = \\?").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 3)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVenueRepo_ListPublicWithSearch(t *testing.T) {
	db, mock := newMock(t)
	repo := NewVenueRepo(db)

	mock.ExpectQuery("WHERE status = \\? AND city = \\? AND \\(name LIKE \\? OR city LIKE \\? OR location LIKE \\?\\) ORDER BY is_featured DESC").
		WithArgs(model.ModerationApproved, "Tetovo", `%50\% off%`, `%50\% off%`, `%50\% off%`).
		WillReturnRows(sqlmock.NewRows(venueCols).AddRow(venueRow(1, 10, "approved")...))

	list, err := repo.List(context.Background(), model.VenueFilter{Status: model.ModerationApproved, City: " Tetovo ", Search: "50% off"})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVenueRepo_UpdateForbidden(t *testing.T) {
	db, mock := newMock(t)
	repo := NewVenueRepo(db)

	mock.ExpectQuery("SELECT .+ FROM venues WHERE id = \\?").
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows(venueCols).AddRow(venueRow(3, 10, "approved")...))

	err := repo.UpdateByIDAndOwner(context.Background(), &model.Venue{ID: 3, OwnerID: 11, Name: "x"})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVenueRepo_ModerateFeaturedOnly(t *testing.T) {
	db, mock := newMock(t)
	repo := NewVenueRepo(db)

	featured := false
	mock.ExpectExec("UPDATE venues SET updated_at = CURRENT_TIMESTAMP, is_featured = \\? WHERE id = \\?").
		WithArgs(false, uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT .+ FROM venues WHERE id = \\?").
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows(venueCols).AddRow(venueRow(3, 10, "approved")...))

	_, err := repo.Moderate(context.Background(), 3, nil, &featured)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVenueRepo_DeleteMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewVenueRepo(db)

	mock.ExpectExec("DELETE FROM venues WHERE id = \\?").
		WithArgs(uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 3), ErrNotFound)
}

func TestVenueRepo_Cities(t *testing.T) {
	db, mock := newMock(t)
	repo := NewVenueRepo(db)

	mock.ExpectQuery("SELECT DISTINCT city FROM venues WHERE status = 'approved'").
		WillReturnRows(sqlmock.NewRows([]string{"city"}).AddRow("Gostivar").AddRow("Tetovo"))

	cities, err := repo.Cities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Gostivar", "Tetovo"}, cities)
}
