package service

import "github.com/iliyamo/wedding-venue-booking/internal/model"

// BlockedDates returns the set of days occupied by the given reservations.
// Only pending and confirmed reservations block a day; cancelled ones are
// ignored, which is what frees a date after cancellation.  Past dates are
// not filtered here.
func BlockedDates(reservations []model.Reservation) model.DateSet {
	set := make(model.DateSet, len(reservations))
	for _, r := range reservations {
		if r.Status.Active() {
			set[r.EventDate] = struct{}{}
		}
	}
	return set
}
