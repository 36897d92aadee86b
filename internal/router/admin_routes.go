package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wedding-venue-booking/internal/middleware"
	"github.com/iliyamo/wedding-venue-booking/internal/model"
)

// RegisterAdmin registers moderation and oversight endpoints under
// /v1/admin.  Every route requires the admin role.
func RegisterAdmin(e *echo.Echo, d Deps) {
	g := e.Group("/v1/admin",
		middleware.JWTAuth(d.JWTSecret),
		middleware.RequireRole(model.RoleAdmin),
	)

	g.GET("/venues", d.Venues.AdminListVenues)
	g.POST("/venues/:id/approve", d.Venues.ApproveVenue)
	g.POST("/venues/:id/reject", d.Venues.RejectVenue)
	g.POST("/venues/:id/feature", d.Venues.FeatureVenue)
	g.DELETE("/venues/:id", d.Venues.DeleteVenue)

	g.GET("/services", d.Services.AdminListServices)
	g.POST("/services/:id/approve", d.Services.ApproveService)
	g.POST("/services/:id/reject", d.Services.RejectService)
	g.POST("/services/:id/feature", d.Services.FeatureService)
	g.DELETE("/services/:id", d.Services.DeleteService)

	g.GET("/reservations", d.Reservations.AdminReservations)
	g.POST("/reservations/:id/cancel", d.Reservations.Cancel)
}
