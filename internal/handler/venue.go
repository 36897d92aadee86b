package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/iliyamo/wedding-venue-booking/internal/i18n"
	"github.com/iliyamo/wedding-venue-booking/internal/model"
	"github.com/iliyamo/wedding-venue-booking/internal/repository"
)

// VenueStore is the persistence needed by the venue endpoints.  Both the
// MySQL store and the in-memory store satisfy it.
type VenueStore interface {
	CreateVenue(ctx context.Context, v *model.Venue) error
	FindVenue(ctx context.Context, id uint64) (*model.Venue, error)
	ListVenues(ctx context.Context, f model.VenueFilter) ([]model.Venue, error)
	ListCities(ctx context.Context) ([]string, error)
	UpdateVenue(ctx context.Context, v *model.Venue) error
	ModerateVenue(ctx context.Context, id uint64, status *model.ModerationStatus, featured *bool) (*model.Venue, error)
	DeleteVenue(ctx context.Context, id uint64) error
}

// VenueHandler serves public browsing, owner management and admin
// moderation of venues.
type VenueHandler struct {
	store VenueStore
}

// NewVenueHandler constructs a VenueHandler and panics on a nil store.
func NewVenueHandler(store VenueStore) *VenueHandler {
	if store == nil {
		panic("nil store passed to NewVenueHandler")
	}
	return &VenueHandler{store: store}
}

// venueInput is the owner-editable part of a venue.  Pointer fields let
// PATCH leave values untouched.
type venueInput struct {
	Name               *string   `json:"name"`
	Description        *string   `json:"description"`
	DescriptionSQ      *string   `json:"description_sq"`
	DescriptionMK      *string   `json:"description_mk"`
	Location           *string   `json:"location"`
	City               *string   `json:"city"`
	Address            *string   `json:"address"`
	CapacityMin        *int      `json:"capacity_min"`
	CapacityMax        *int      `json:"capacity_max"`
	PricePerGuestCents *int64    `json:"price_per_guest_cents"`
	BasePriceCents     *int64    `json:"base_price_cents"`
	Amenities          *[]string `json:"amenities"`
	CoverImage         *string   `json:"cover_image"`
	ContactPhone       *string   `json:"contact_phone"`
	ContactEmail       *string   `json:"contact_email"`
}

// apply merges the provided fields into v.  Optional text fields sent as
// blank strings are cleared.
func (in venueInput) apply(v *model.Venue) {
	if in.Name != nil {
		v.Name = strings.TrimSpace(*in.Name)
	}
	if in.Location != nil {
		v.Location = strings.TrimSpace(*in.Location)
	}
	if in.City != nil {
		v.City = strings.TrimSpace(*in.City)
	}
	if in.Description != nil {
		v.Description = trimmed(in.Description)
	}
	if in.DescriptionSQ != nil {
		v.DescriptionSQ = trimmed(in.DescriptionSQ)
	}
	if in.DescriptionMK != nil {
		v.DescriptionMK = trimmed(in.DescriptionMK)
	}
	if in.Address != nil {
		v.Address = trimmed(in.Address)
	}
	if in.CapacityMin != nil {
		v.CapacityMin = in.CapacityMin
	}
	if in.CapacityMax != nil {
		v.CapacityMax = *in.CapacityMax
	}
	if in.PricePerGuestCents != nil {
		v.PricePerGuestCents = in.PricePerGuestCents
	}
	if in.BasePriceCents != nil {
		v.BasePriceCents = in.BasePriceCents
	}
	if in.Amenities != nil {
		v.Amenities = cleanList(*in.Amenities)
	}
	if in.CoverImage != nil {
		v.CoverImage = trimmed(in.CoverImage)
	}
	if in.ContactPhone != nil {
		v.ContactPhone = trimmed(in.ContactPhone)
	}
	if in.ContactEmail != nil {
		v.ContactEmail = trimmed(in.ContactEmail)
	}
}

func validateVenue(v *model.Venue) string {
	switch {
	case v.Name == "" || v.Location == "" || v.City == "":
		return "name, location and city are required"
	case v.CapacityMax < 1:
		return "capacity_max must be at least 1"
	case v.CapacityMin != nil && *v.CapacityMin < 0:
		return "capacity_min must not be negative"
	case v.CapacityMin != nil && *v.CapacityMin > v.CapacityMax:
		return "capacity_min must not exceed capacity_max"
	case v.PricePerGuestCents != nil && *v.PricePerGuestCents < 0,
		v.BasePriceCents != nil && *v.BasePriceCents < 0:
		return "prices must not be negative"
	}
	return ""
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// localizeVenue sets Description to the variant matching the request
// language.
func localizeVenue(c echo.Context, v model.Venue) model.Venue {
	v.Description = i18n.Description(lang(c), v.Description, v.DescriptionSQ, v.DescriptionMK)
	return v
}

// ---- Public ----

// ListVenues handles GET /v1/venues.  Only approved venues are listed,
// featured first then newest.  Optional ?search= matches name, city or
// location and ?city= filters exactly.
func (h *VenueHandler) ListVenues(c echo.Context) error {
	venues, err := h.store.ListVenues(c.Request().Context(), model.VenueFilter{
		Status: model.ModerationApproved,
		City:   strings.TrimSpace(c.QueryParam("city")),
		Search: strings.TrimSpace(c.QueryParam("search")),
	})
	if err != nil {
		return writeError(c, err)
	}
	for i := range venues {
		venues[i] = localizeVenue(c, venues[i])
	}
	return c.JSON(http.StatusOK, venues)
}

// ListCities handles GET /v1/venues/cities.
func (h *VenueHandler) ListCities(c echo.Context) error {
	cities, err := h.store.ListCities(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, cities)
}

// GetVenue handles GET /v1/venues/:id.  Venues that are not approved are
// reported as missing.
func (h *VenueHandler) GetVenue(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid venue id")
	}
	v, err := h.store.FindVenue(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	if v.Status != model.ModerationApproved {
		return writeError(c, repository.ErrNotFound)
	}
	return c.JSON(http.StatusOK, localizeVenue(c, *v))
}

// ---- Owner ----

// CreateVenue handles POST /v1/owner/venues.  New venues always start
// pending and unfeatured.
func (h *VenueHandler) CreateVenue(c echo.Context) error {
	id := identity(c)
	if id == nil {
		return fail(c, http.StatusUnauthorized, i18n.MsgUnauthorized, "")
	}
	var body venueInput
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	v := &model.Venue{OwnerID: id.UserID, Amenities: []string{}}
	body.apply(v)
	if msg := validateVenue(v); msg != "" {
		return invalid(c, msg)
	}
	v.Status = model.ModerationPending
	v.IsFeatured = false
	if err := h.store.CreateVenue(c.Request().Context(), v); err != nil {
		return writeError(c, err)
	}
	c.Logger().Infoj(log.JSON{"msg": "venue created", "venue_id": v.ID, "owner_id": v.OwnerID})
	return c.JSON(http.StatusCreated, v)
}

// ListOwnVenues handles GET /v1/owner/venues and returns every venue of the
// caller regardless of moderation status.
func (h *VenueHandler) ListOwnVenues(c echo.Context) error {
	id := identity(c)
	if id == nil {
		return fail(c, http.StatusUnauthorized, i18n.MsgUnauthorized, "")
	}
	venues, err := h.store.ListVenues(c.Request().Context(), model.VenueFilter{OwnerID: id.UserID})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, venues)
}

// UpdateVenue handles PUT/PATCH /v1/owner/venues/:id.  Both verbs merge the
// fields present in the body; status and the featured flag are never
// editable here.
func (h *VenueHandler) UpdateVenue(c echo.Context) error {
	id := identity(c)
	if id == nil {
		return fail(c, http.StatusUnauthorized, i18n.MsgUnauthorized, "")
	}
	venueID, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid venue id")
	}
	ctx := c.Request().Context()
	cur, err := h.store.FindVenue(ctx, venueID)
	if err != nil {
		return writeError(c, err)
	}
	if cur.OwnerID != id.UserID {
		return writeError(c, repository.ErrForbidden)
	}
	var body venueInput
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	body.apply(cur)
	if msg := validateVenue(cur); msg != "" {
		return invalid(c, msg)
	}
	if err := h.store.UpdateVenue(ctx, cur); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, cur)
}

// ---- Admin ----

// AdminListVenues handles GET /v1/admin/venues with an optional ?status=.
func (h *VenueHandler) AdminListVenues(c echo.Context) error {
	status := model.ModerationStatus(strings.TrimSpace(c.QueryParam("status")))
	if status != "" && !status.Valid() {
		return invalid(c, "unknown status")
	}
	venues, err := h.store.ListVenues(c.Request().Context(), model.VenueFilter{Status: status})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, venues)
}

// ApproveVenue handles POST /v1/admin/venues/:id/approve[?featured=bool].
func (h *VenueHandler) ApproveVenue(c echo.Context) error {
	featured, set, err := parseBool(c, "featured")
	if err != nil {
		return badRequest(c, "featured must be a boolean")
	}
	status := model.ModerationApproved
	var feat *bool
	if set {
		feat = &featured
	}
	return h.moderate(c, &status, feat)
}

// RejectVenue handles POST /v1/admin/venues/:id/reject.
func (h *VenueHandler) RejectVenue(c echo.Context) error {
	status := model.ModerationRejected
	return h.moderate(c, &status, nil)
}

// FeatureVenue handles POST /v1/admin/venues/:id/feature?on=bool.  The
// moderation status is left alone.
func (h *VenueHandler) FeatureVenue(c echo.Context) error {
	on, set, err := parseBool(c, "on")
	if err != nil {
		return badRequest(c, "on must be a boolean")
	}
	if !set {
		on = true
	}
	return h.moderate(c, nil, &on)
}

func (h *VenueHandler) moderate(c echo.Context, status *model.ModerationStatus, featured *bool) error {
	venueID, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid venue id")
	}
	v, err := h.store.ModerateVenue(c.Request().Context(), venueID, status, featured)
	if err != nil {
		return writeError(c, err)
	}
	c.Logger().Infoj(log.JSON{"msg": "venue moderated", "venue_id": v.ID, "status": v.Status, "featured": v.IsFeatured})
	return c.JSON(http.StatusOK, v)
}

// DeleteVenue handles DELETE /v1/admin/venues/:id.  Reservations and
// inquiries of the venue go with it.
func (h *VenueHandler) DeleteVenue(c echo.Context) error {
	venueID, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid venue id")
	}
	if err := h.store.DeleteVenue(c.Request().Context(), venueID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
