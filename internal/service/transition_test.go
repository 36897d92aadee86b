package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/wedding-venue-booking/internal/model"
)

func TestCheckTransition(t *testing.T) {
	const ownerID, customerID, strangerID, adminID = 10, 20, 30, 40
	cust := uint64(customerID)

	owner := &model.Identity{UserID: ownerID, Role: model.RoleHallOwner}
	customer := &model.Identity{UserID: customerID, Role: model.RoleCustomer}
	stranger := &model.Identity{UserID: strangerID, Role: model.RoleCustomer}
	admin := &model.Identity{UserID: adminID, Role: model.RoleAdmin}

	pending := func() *model.Reservation {
		return &model.Reservation{ID: 1, CustomerID: &cust, Status: model.ReservationPending}
	}
	withStatus := func(s model.ReservationStatus) *model.Reservation {
		r := pending()
		r.Status = s
		return r
	}

	tests := []struct {
		name    string
		actor   *model.Identity
		res     *model.Reservation
		to      model.ReservationStatus
		wantErr error
	}{
		{"owner confirms", owner, pending(), model.ReservationConfirmed, nil},
		{"owner cancels", owner, pending(), model.ReservationCancelled, nil},
		{"customer cancels own", customer, pending(), model.ReservationCancelled, nil},
		{"admin cancels", admin, pending(), model.ReservationCancelled, nil},
		{"customer cannot confirm", customer, pending(), model.ReservationConfirmed, ErrForbidden},
		{"admin cannot confirm", admin, pending(), model.ReservationConfirmed, ErrForbidden},
		{"stranger cannot cancel", stranger, pending(), model.ReservationCancelled, ErrForbidden},
		{"stranger learns nothing about terminal state", stranger, withStatus(model.ReservationConfirmed), model.ReservationCancelled, ErrForbidden},
		{"confirm twice", owner, withStatus(model.ReservationConfirmed), model.ReservationConfirmed, ErrInvalidTransition},
		{"cancel confirmed", owner, withStatus(model.ReservationConfirmed), model.ReservationCancelled, ErrInvalidTransition},
		{"revive cancelled", owner, withStatus(model.ReservationCancelled), model.ReservationConfirmed, ErrInvalidTransition},
		{"back to pending", owner, pending(), model.ReservationPending, ErrInvalidTransition},
		{"no identity", nil, pending(), model.ReservationCancelled, ErrUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckTransition(tt.actor, ownerID, tt.res, tt.to)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCheckTransition_AnonymousReservation(t *testing.T) {
	r := &model.Reservation{Status: model.ReservationPending}
	someone := &model.Identity{UserID: 99, Role: model.RoleCustomer}

	err := CheckTransition(someone, 10, r, model.ReservationCancelled)
	assert.ErrorIs(t, err, ErrForbidden)
}
