package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wedding-venue-booking/internal/model"
	"github.com/iliyamo/wedding-venue-booking/internal/service"
)

// ReservationHandler exposes the booking flow: availability, quotes,
// reservation requests and the status dashboards.  Authorization of
// status changes is decided by the booking service, so the same confirm
// and cancel handlers serve customers, owners and admins.
type ReservationHandler struct {
	booking *service.BookingService
}

// NewReservationHandler constructs a ReservationHandler.
func NewReservationHandler(booking *service.BookingService) *ReservationHandler {
	if booking == nil {
		panic("nil booking service passed to NewReservationHandler")
	}
	return &ReservationHandler{booking: booking}
}

// Availability handles GET /v1/venues/:id/availability.  It returns the
// dates from today onwards that already hold a pending or confirmed
// reservation.
func (h *ReservationHandler) Availability(c echo.Context) error {
	venueID, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid venue id")
	}
	dates, err := h.booking.Availability(c.Request().Context(), venueID)
	if err != nil {
		return writeError(c, err)
	}
	if dates == nil {
		dates = []model.Date{}
	}
	return c.JSON(http.StatusOK, echo.Map{"venue_id": venueID, "blocked_dates": dates})
}

// Quote handles GET /v1/venues/:id/quote?guests=n.  Without guests the
// venue's default guest count is used.
func (h *ReservationHandler) Quote(c echo.Context) error {
	venueID, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid venue id")
	}
	guests := 0
	if raw := strings.TrimSpace(c.QueryParam("guests")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return invalid(c, "guests must be a positive integer")
		}
		guests = n
	}
	q, err := h.booking.Quote(c.Request().Context(), venueID, guests)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, q)
}

// Create handles POST /v1/venues/:id/reservations.  Whether an anonymous
// caller may book is decided by the service configuration.
func (h *ReservationHandler) Create(c echo.Context) error {
	venueID, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid venue id")
	}
	var body struct {
		EventDate     string `json:"event_date"`
		GuestCount    int    `json:"guest_count"`
		CustomerName  string `json:"customer_name"`
		CustomerEmail string `json:"customer_email"`
		CustomerPhone string `json:"customer_phone"`
		Notes         string `json:"notes"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	res, err := h.booking.CreateReservation(c.Request().Context(), identity(c), service.ReservationRequest{
		VenueID:       venueID,
		EventDate:     body.EventDate,
		GuestCount:    body.GuestCount,
		CustomerName:  body.CustomerName,
		CustomerEmail: body.CustomerEmail,
		CustomerPhone: body.CustomerPhone,
		Notes:         body.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}

// Confirm handles POST /v1/owner/reservations/:id/confirm.
func (h *ReservationHandler) Confirm(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid reservation id")
	}
	res, err := h.booking.Confirm(c.Request().Context(), identity(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// Cancel handles the customer, owner and admin cancel routes.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid reservation id")
	}
	res, err := h.booking.Cancel(c.Request().Context(), identity(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// MyReservations handles GET /v1/my-reservations, ordered by event date.
func (h *ReservationHandler) MyReservations(c echo.Context) error {
	return h.list(c, h.booking.ListForCustomer)
}

// OwnerReservations handles GET /v1/owner/reservations.
func (h *ReservationHandler) OwnerReservations(c echo.Context) error {
	return h.list(c, h.booking.ListForOwner)
}

// AdminReservations handles GET /v1/admin/reservations.
func (h *ReservationHandler) AdminReservations(c echo.Context) error {
	return h.list(c, h.booking.ListAll)
}

type listFunc func(ctx context.Context, actor *model.Identity, status model.ReservationStatus) ([]model.ReservationView, error)

func (h *ReservationHandler) list(c echo.Context, fn listFunc) error {
	status := model.ReservationStatus(strings.TrimSpace(c.QueryParam("status")))
	if status != "" && !status.Valid() {
		return invalid(c, "unknown status")
	}
	list, err := fn(c.Request().Context(), identity(c), status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}
