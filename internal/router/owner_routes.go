package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wedding-venue-booking/internal/middleware"
	"github.com/iliyamo/wedding-venue-booking/internal/model"
)

// RegisterOwner registers the /v1/owner endpoints.  Venues, their
// reservations and inquiries belong to hall owners; vendor services belong
// to service owners.
func RegisterOwner(e *echo.Echo, d Deps) {
	g := e.Group("/v1/owner", middleware.JWTAuth(d.JWTSecret))
	hall := middleware.RequireRole(model.RoleHallOwner)
	vendor := middleware.RequireRole(model.RoleServiceOwner)

	// ---- Venues ----
	g.POST("/venues", d.Venues.CreateVenue, hall)
	g.GET("/venues", d.Venues.ListOwnVenues, hall)
	g.PUT("/venues/:id", d.Venues.UpdateVenue, hall)
	g.PATCH("/venues/:id", d.Venues.UpdateVenue, hall)

	// ---- Reservations ----
	g.GET("/reservations", d.Reservations.OwnerReservations, hall)
	g.POST("/reservations/:id/confirm", d.Reservations.Confirm, hall)
	g.POST("/reservations/:id/cancel", d.Reservations.Cancel, hall)

	// ---- Inquiries ----
	g.GET("/inquiries", d.Inquiries.ListOwnerInquiries, hall)
	g.POST("/inquiries/:id/read", d.Inquiries.MarkRead, hall)

	// ---- Vendor services ----
	g.POST("/services", d.Services.CreateService, vendor)
	g.GET("/services", d.Services.ListOwnServices, vendor)
	g.PUT("/services/:id", d.Services.UpdateService, vendor)
	g.PATCH("/services/:id", d.Services.UpdateService, vendor)
}
