package service

import (
	"fmt"

	"github.com/iliyamo/wedding-venue-booking/internal/model"
)

// CheckTransition decides whether actor may move r to the target status.
// venueOwnerID is the owner of the venue r belongs to.
//
// Rules:
//   - pending → confirmed: venue owner only.
//   - pending → cancelled: venue owner, the reservation's customer, or an admin.
//   - nothing leaves confirmed or cancelled.
//
// Permission is checked before state so that strangers learn nothing about
// a reservation's status.
func CheckTransition(actor *model.Identity, venueOwnerID uint64, r *model.Reservation, to model.ReservationStatus) error {
	if actor == nil {
		return ErrUnauthorized
	}
	isOwner := actor.UserID == venueOwnerID
	isCustomer := r.CustomerID != nil && *r.CustomerID == actor.UserID

	switch to {
	case model.ReservationConfirmed:
		if !isOwner {
			return ErrForbidden
		}
	case model.ReservationCancelled:
		if !isOwner && !isCustomer && !actor.IsAdmin() {
			return ErrForbidden
		}
	default:
		return fmt.Errorf("%w: cannot move to %q", ErrInvalidTransition, to)
	}

	if r.Status != model.ReservationPending {
		return fmt.Errorf("%w: reservation is %s", ErrInvalidTransition, r.Status)
	}
	return nil
}
