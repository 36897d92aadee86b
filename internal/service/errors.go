package service

import "errors"

// Errors returned by the booking core.  They are user facing: callers
// translate them into a corrective message and do not retry, except for
// ErrDateConflict where re-fetching availability and picking another date
// is the expected reaction.
var (
	// ErrUnauthorized is returned when an identity is required but absent.
	ErrUnauthorized = errors.New("authentication required")
	// ErrForbidden is returned when the actor may not act on the resource.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound is returned when the venue or reservation does not exist
	// or is not visible to the caller.
	ErrNotFound = errors.New("not found")
	// ErrCapacityExceeded is returned when the guest count is above the
	// venue's maximum capacity.
	ErrCapacityExceeded = errors.New("guest count exceeds venue capacity")
	// ErrDateConflict is returned when the venue already has a pending or
	// confirmed reservation on the requested date, whether detected by the
	// pre-check or by the storage uniqueness constraint.
	ErrDateConflict = errors.New("date is already booked")
	// ErrInvalidTransition is returned when a status change is not defined
	// from the reservation's current status.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrValidation is returned for malformed or missing request fields.
	ErrValidation = errors.New("validation error")
)
