package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wedding-venue-booking/internal/middleware"
)

// RegisterCustomer registers the endpoints available to any authenticated
// user: their own reservations and cancelling one that is still pending.
// Ownership of the reservation is checked by the booking service.
func RegisterCustomer(e *echo.Echo, d Deps) {
	auth := middleware.JWTAuth(d.JWTSecret)
	e.GET("/v1/my-reservations", d.Reservations.MyReservations, auth)
	e.POST("/v1/reservations/:id/cancel", d.Reservations.Cancel, auth)
}
