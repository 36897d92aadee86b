package queue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditConsumer_HandleMessage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "reservations.log")
	c := &AuditConsumer{LogPath: path}
	c.defaults()

	r, v := testReservation()
	for _, event := range []string{"reservation.created", "reservation.confirmed"} {
		body, err := json.Marshal(NewReservationEvent(event, r, v, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)))
		require.NoError(t, err)
		require.NoError(t, c.handleMessage(body))
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "reservation.created")
	assert.Contains(t, lines[0], "reservation_id=5")
	assert.Contains(t, lines[0], `venue="Crystal Hall"`)
	assert.Contains(t, lines[0], "total=150 cents")
	assert.Contains(t, lines[1], "reservation.confirmed")
}

func TestAuditConsumer_RejectsMalformed(t *testing.T) {
	c := &AuditConsumer{LogPath: filepath.Join(t.TempDir(), "r.log")}
	c.defaults()

	assert.Error(t, c.handleMessage([]byte("{oops")))
	assert.Error(t, c.handleMessage([]byte(`{"event":""}`)))
}

func TestFormatAuditLine_Anonymous(t *testing.T) {
	r, v := testReservation()
	r.CustomerID = nil
	r.TotalPriceCents = nil

	line := formatAuditLine(NewReservationEvent("reservation.created", r, v, time.Now()))
	assert.Contains(t, line, "customer=anonymous")
	assert.Contains(t, line, "total=n/a")
	assert.True(t, strings.HasSuffix(line, "\n"))
}
