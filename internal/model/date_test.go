package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2025-06-01 ")
	require.NoError(t, err)
	assert.Equal(t, Date("2025-06-01"), d)

	for _, bad := range []string{"", "2025-6-1", "2025-02-30", "01/06/2025", "2025-06-01T10:00:00Z"} {
		_, err := ParseDate(bad)
		assert.ErrorIs(t, err, ErrInvalidDate, bad)
	}
}

func TestDateOf_UsesWallClockOfLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	ts := time.Date(2025, 6, 1, 0, 30, 0, 0, loc)
	assert.Equal(t, Date("2025-06-01"), DateOf(ts))
	assert.Equal(t, Date("2025-05-31"), DateOf(ts.UTC()))
}

func TestDateSet_Sorted(t *testing.T) {
	s := DateSet{"2025-07-01": {}, "2024-12-31": {}, "2025-06-15": {}}
	assert.Equal(t, []Date{"2024-12-31", "2025-06-15", "2025-07-01"}, s.Sorted())
	assert.True(t, s.Has("2025-06-15"))
	assert.False(t, s.Has("2025-06-16"))
}

func TestReservationStatus_Predicates(t *testing.T) {
	assert.True(t, ReservationPending.Active())
	assert.True(t, ReservationConfirmed.Active())
	assert.False(t, ReservationCancelled.Active())
	assert.False(t, ReservationPending.Terminal())
	assert.True(t, ReservationConfirmed.Terminal())
	assert.True(t, ReservationCancelled.Terminal())
	assert.False(t, ReservationStatus("archived").Valid())
}
