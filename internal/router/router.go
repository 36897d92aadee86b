// Package router registers the HTTP routes of the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wedding-venue-booking/internal/handler"
	"github.com/iliyamo/wedding-venue-booking/internal/middleware"
)

// Deps carries everything the routes need.  Cache and RateLimit are
// optional; nil means the routes run without them.
type Deps struct {
	JWTSecret    string
	Health       *handler.Health
	Venues       *handler.VenueHandler
	Services     *handler.ServiceHandler
	Inquiries    *handler.InquiryHandler
	Reservations *handler.ReservationHandler
	Cache        echo.MiddlewareFunc
	RateLimit    echo.MiddlewareFunc
}

func (d Deps) cache() echo.MiddlewareFunc     { return orNoop(d.Cache) }
func (d Deps) rateLimit() echo.MiddlewareFunc { return orNoop(d.RateLimit) }

func orNoop(mw echo.MiddlewareFunc) echo.MiddlewareFunc {
	if mw == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return mw
}

// Register mounts every route group on e.
func Register(e *echo.Echo, d Deps) {
	RegisterPublic(e, d)
	RegisterCustomer(e, d)
	RegisterOwner(e, d)
	RegisterAdmin(e, d)
}

// RegisterPublic registers the endpoints that guests can use.  Listings are
// served through the response cache; availability is not, since it has
// its own cache that reservations invalidate.  Reservation requests and
// inquiries accept an optional token so the caller's identity is attached
// when present.
func RegisterPublic(e *echo.Echo, d Deps) {
	e.GET("/healthz", d.Health.Get)

	cache := d.cache()
	optional := middleware.OptionalJWT(d.JWTSecret)

	g := e.Group("/v1")
	g.GET("/venues", d.Venues.ListVenues, cache)
	g.GET("/venues/cities", d.Venues.ListCities, cache)
	g.GET("/venues/:id", d.Venues.GetVenue, cache)
	g.GET("/venues/:id/availability", d.Reservations.Availability)
	g.GET("/venues/:id/quote", d.Reservations.Quote)
	g.POST("/venues/:id/reservations", d.Reservations.Create, optional, d.rateLimit())

	g.GET("/services", d.Services.ListServices, cache)
	g.GET("/services/:id", d.Services.GetService, cache)

	g.POST("/inquiries", d.Inquiries.CreateInquiry, optional, d.rateLimit())
}
