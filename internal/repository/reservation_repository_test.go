package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/wedding-venue-booking/internal/model"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

var reservationCols = []string{"id", "venue_id", "customer_id", "event_date", "guest_count", "total_price_cents",
	"status", "customer_name", "customer_email", "customer_phone", "notes", "created_at", "updated_at"}

func reservationRow(id uint64, status string) []driver.Value {
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	return []driver.Value{id, 3, 20, "2025-06-01", 50, 1050, status, "Ana", "ana@example.com", nil, nil, now, now}
}

func TestReservationRepo_Insert(t *testing.T) {
	db, mock := newMock(t)
	repo := NewReservationRepo(db)

	mock.ExpectExec("INSERT INTO reservations").
		WithArgs(uint64(3), sqlmock.AnyArg(), "2025-06-01", 50, sqlmock.AnyArg(), model.ReservationPending,
			"Ana", "ana@example.com", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectQuery("SELECT .+ FROM reservations r WHERE r.id = \\?").
		WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows(reservationCols).AddRow(reservationRow(9, "pending")...))

	customer := uint64(20)
	price := int64(1050)
	res := &model.Reservation{
		VenueID: 3, CustomerID: &customer, EventDate: "2025-06-01", GuestCount: 50,
		TotalPriceCents: &price, Status: model.ReservationPending,
		CustomerName: "Ana", CustomerEmail: "ana@example.com",
	}
	require.NoError(t, repo.Insert(context.Background(), res))

	assert.Equal(t, uint64(9), res.ID)
	assert.Equal(t, model.Date("2025-06-01"), res.EventDate)
	require.NotNil(t, res.CustomerID)
	assert.Equal(t, uint64(20), *res.CustomerID)
	assert.Nil(t, res.CustomerPhone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepo_InsertDuplicate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewReservationRepo(db)

	mock.ExpectExec("INSERT INTO reservations").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry '3-2025-06-01' for key 'uq_reservations_venue_active_date'"})

	err := repo.Insert(context.Background(), &model.Reservation{VenueID: 3, EventDate: "2025-06-01", Status: model.ReservationPending})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepo_InsertOtherError(t *testing.T) {
	db, mock := newMock(t)
	repo := NewReservationRepo(db)

	mock.ExpectExec("INSERT INTO reservations").
		WillReturnError(&mysql.MySQLError{Number: 1452, Message: "foreign key"})

	err := repo.Insert(context.Background(), &model.Reservation{VenueID: 3, EventDate: "2025-06-01"})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrDuplicate))
}

func TestReservationRepo_GetByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewReservationRepo(db)

	mock.ExpectQuery("SELECT .+ FROM reservations r WHERE r.id = \\?").
		WithArgs(uint64(1)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReservationRepo_ListByVenue(t *testing.T) {
	db, mock := newMock(t)
	repo := NewReservationRepo(db)

	from := model.Date("2025-05-01")
	mock.ExpectQuery("WHERE r.venue_id = \\? AND r.status IN \\(\\?, \\?\\) AND r.event_date >= \\? ORDER BY r.event_date").
		WithArgs(uint64(3), model.ReservationPending, model.ReservationConfirmed, "2025-05-01").
		WillReturnRows(sqlmock.NewRows(reservationCols).
			AddRow(reservationRow(1, "pending")...).
			AddRow(reservationRow(2, "confirmed")...))

	list, err := repo.ListByVenue(context.Background(), 3, model.ActiveStatuses, &from)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, model.ReservationConfirmed, list[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepo_UpdateStatus(t *testing.T) {
	db, mock := newMock(t)
	repo := NewReservationRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM reservations WHERE id = \\? FOR UPDATE").
		WithArgs(uint64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("pending"))
	mock.ExpectExec("UPDATE reservations SET status = \\?").
		WithArgs(model.ReservationConfirmed, uint64(4), model.ReservationPending).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT .+ FROM reservations r WHERE r.id = \\?").
		WithArgs(uint64(4)).
		WillReturnRows(sqlmock.NewRows(reservationCols).AddRow(reservationRow(4, "confirmed")...))
	mock.ExpectCommit()

	res, err := repo.UpdateStatus(context.Background(), 4, model.ReservationPending, model.ReservationConfirmed)
	require.NoError(t, err)
	assert.Equal(t, model.ReservationConfirmed, res.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepo_UpdateStatusStale(t *testing.T) {
	db, mock := newMock(t)
	repo := NewReservationRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM reservations WHERE id = \\? FOR UPDATE").
		WithArgs(uint64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("cancelled"))
	mock.ExpectRollback()

	_, err := repo.UpdateStatus(context.Background(), 4, model.ReservationPending, model.ReservationConfirmed)
	assert.ErrorIs(t, err, ErrStaleStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepo_UpdateStatusMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewReservationRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM reservations WHERE id = \\? FOR UPDATE").
		WithArgs(uint64(4)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.UpdateStatus(context.Background(), 4, model.ReservationPending, model.ReservationCancelled)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReservationRepo_ListViewsForOwner(t *testing.T) {
	db, mock := newMock(t)
	repo := NewReservationRepo(db)

	cols := append(append([]string{}, reservationCols...), "name", "city", "cover_image")
	row := append(reservationRow(1, "pending"), "Crystal Hall", "Tetovo", nil)
	mock.ExpectQuery("JOIN venues v ON v.id = r.venue_id\\s+WHERE v.owner_id = \\? AND r.status = \\?").
		WithArgs(uint64(10), model.ReservationPending).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(row...))

	views, err := repo.ListViews(context.Background(), model.ReservationFilter{OwnerID: 10, Status: model.ReservationPending})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Crystal Hall", views[0].VenueName)
	assert.Nil(t, views[0].CoverImage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsDuplicate(t *testing.T) {
	assert.True(t, isDuplicate(&mysql.MySQLError{Number: 1062}))
	assert.False(t, isDuplicate(&mysql.MySQLError{Number: 1064}))
	assert.False(t, isDuplicate(errors.New("1062")))
}
