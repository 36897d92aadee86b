package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/wedding-venue-booking/internal/model"
)

func TestBlockedDates(t *testing.T) {
	list := []model.Reservation{
		{EventDate: "2025-06-01", Status: model.ReservationPending},
		{EventDate: "2025-06-02", Status: model.ReservationConfirmed},
		{EventDate: "2025-06-03", Status: model.ReservationCancelled},
		{EventDate: "2024-01-01", Status: model.ReservationConfirmed},
	}

	got := BlockedDates(list)

	assert.True(t, got.Has("2025-06-01"))
	assert.True(t, got.Has("2025-06-02"))
	assert.False(t, got.Has("2025-06-03"), "cancelled reservations do not block")
	assert.True(t, got.Has("2024-01-01"), "past dates are not filtered")
	assert.Equal(t, []model.Date{"2024-01-01", "2025-06-01", "2025-06-02"}, got.Sorted())
}

func TestBlockedDates_IdempotentRead(t *testing.T) {
	list := []model.Reservation{
		{EventDate: "2025-06-01", Status: model.ReservationPending},
		{EventDate: "2025-06-01", Status: model.ReservationCancelled},
		{EventDate: "2025-07-01", Status: model.ReservationConfirmed},
	}
	assert.Equal(t, BlockedDates(list), BlockedDates(list))
}

func TestBlockedDates_Empty(t *testing.T) {
	assert.Empty(t, BlockedDates(nil))
}
