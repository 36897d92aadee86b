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

// ServiceStore is the persistence needed by the vendor service endpoints.
type ServiceStore interface {
	CreateService(ctx context.Context, vs *model.VendorService) error
	GetService(ctx context.Context, id uint64) (*model.VendorService, error)
	ListServices(ctx context.Context, f model.ServiceFilter) ([]model.VendorService, error)
	UpdateService(ctx context.Context, vs *model.VendorService) error
	ModerateService(ctx context.Context, id uint64, status *model.ModerationStatus, featured *bool) (*model.VendorService, error)
	DeleteService(ctx context.Context, id uint64) error
}

// ServiceHandler serves wedding vendor listings: photographers, florists,
// salons and the like.
type ServiceHandler struct {
	store ServiceStore
}

// NewServiceHandler constructs a ServiceHandler and panics on a nil store.
func NewServiceHandler(store ServiceStore) *ServiceHandler {
	if store == nil {
		panic("nil store passed to NewServiceHandler")
	}
	return &ServiceHandler{store: store}
}

type serviceInput struct {
	Name           *string                `json:"name"`
	Description    *string                `json:"description"`
	DescriptionSQ  *string                `json:"description_sq"`
	DescriptionMK  *string                `json:"description_mk"`
	Category       *model.ServiceCategory `json:"category"`
	Location       *string                `json:"location"`
	City           *string                `json:"city"`
	Address        *string                `json:"address"`
	PriceFromCents *int64                 `json:"price_from_cents"`
	PriceToCents   *int64                 `json:"price_to_cents"`
	CoverImage     *string                `json:"cover_image"`
	ContactPhone   *string                `json:"contact_phone"`
	ContactEmail   *string                `json:"contact_email"`
	Website        *string                `json:"website"`
	Instagram      *string                `json:"instagram"`
}

func (in serviceInput) apply(vs *model.VendorService) {
	if in.Name != nil {
		vs.Name = strings.TrimSpace(*in.Name)
	}
	if in.Category != nil {
		vs.Category = model.ServiceCategory(strings.TrimSpace(string(*in.Category)))
	}
	if in.Location != nil {
		vs.Location = strings.TrimSpace(*in.Location)
	}
	if in.City != nil {
		vs.City = strings.TrimSpace(*in.City)
	}
	if in.Description != nil {
		vs.Description = trimmed(in.Description)
	}
	if in.DescriptionSQ != nil {
		vs.DescriptionSQ = trimmed(in.DescriptionSQ)
	}
	if in.DescriptionMK != nil {
		vs.DescriptionMK = trimmed(in.DescriptionMK)
	}
	if in.Address != nil {
		vs.Address = trimmed(in.Address)
	}
	if in.PriceFromCents != nil {
		vs.PriceFromCents = in.PriceFromCents
	}
	if in.PriceToCents != nil {
		vs.PriceToCents = in.PriceToCents
	}
	if in.CoverImage != nil {
		vs.CoverImage = trimmed(in.CoverImage)
	}
	if in.ContactPhone != nil {
		vs.ContactPhone = trimmed(in.ContactPhone)
	}
	if in.ContactEmail != nil {
		vs.ContactEmail = trimmed(in.ContactEmail)
	}
	if in.Website != nil {
		vs.Website = trimmed(in.Website)
	}
	if in.Instagram != nil {
		vs.Instagram = trimmed(in.Instagram)
	}
}

func validateService(vs *model.VendorService) string {
	switch {
	case vs.Name == "" || vs.Location == "" || vs.City == "":
		return "name, location and city are required"
	case !vs.Category.Valid():
		return "unknown category"
	case vs.PriceFromCents != nil && *vs.PriceFromCents < 0,
		vs.PriceToCents != nil && *vs.PriceToCents < 0:
		return "prices must not be negative"
	case vs.PriceFromCents != nil && vs.PriceToCents != nil && *vs.PriceFromCents > *vs.PriceToCents:
		return "price_from_cents must not exceed price_to_cents"
	}
	return ""
}

// ListServices handles GET /v1/services with optional ?category= and
// ?city= filters.  Only approved services are listed.
func (h *ServiceHandler) ListServices(c echo.Context) error {
	category := model.ServiceCategory(strings.TrimSpace(c.QueryParam("category")))
	if category != "" && !category.Valid() {
		return invalid(c, "unknown category")
	}
	list, err := h.store.ListServices(c.Request().Context(), model.ServiceFilter{
		Status:   model.ModerationApproved,
		Category: category,
		City:     strings.TrimSpace(c.QueryParam("city")),
	})
	if err != nil {
		return writeError(c, err)
	}
	tag := lang(c)
	for i := range list {
		list[i].Description = i18n.Description(tag, list[i].Description, list[i].DescriptionSQ, list[i].DescriptionMK)
	}
	return c.JSON(http.StatusOK, list)
}

// GetService handles GET /v1/services/:id.
func (h *ServiceHandler) GetService(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid service id")
	}
	vs, err := h.store.GetService(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	if vs.Status != model.ModerationApproved {
		return writeError(c, repository.ErrNotFound)
	}
	vs.Description = i18n.Description(lang(c), vs.Description, vs.DescriptionSQ, vs.DescriptionMK)
	return c.JSON(http.StatusOK, vs)
}

// CreateService handles POST /v1/owner/services.
func (h *ServiceHandler) CreateService(c echo.Context) error {
	id := identity(c)
	if id == nil {
		return fail(c, http.StatusUnauthorized, i18n.MsgUnauthorized, "")
	}
	var body serviceInput
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	owner := id.UserID
	vs := &model.VendorService{OwnerID: &owner}
	body.apply(vs)
	if msg := validateService(vs); msg != "" {
		return invalid(c, msg)
	}
	vs.Status = model.ModerationPending
	vs.IsFeatured = false
	if err := h.store.CreateService(c.Request().Context(), vs); err != nil {
		return writeError(c, err)
	}
	c.Logger().Infoj(log.JSON{"msg": "service created", "service_id": vs.ID, "owner_id": owner})
	return c.JSON(http.StatusCreated, vs)
}

// ListOwnServices handles GET /v1/owner/services.
func (h *ServiceHandler) ListOwnServices(c echo.Context) error {
	id := identity(c)
	if id == nil {
		return fail(c, http.StatusUnauthorized, i18n.MsgUnauthorized, "")
	}
	list, err := h.store.ListServices(c.Request().Context(), model.ServiceFilter{OwnerID: id.UserID})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

// UpdateService handles PUT/PATCH /v1/owner/services/:id.
func (h *ServiceHandler) UpdateService(c echo.Context) error {
	id := identity(c)
	if id == nil {
		return fail(c, http.StatusUnauthorized, i18n.MsgUnauthorized, "")
	}
	serviceID, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid service id")
	}
	ctx := c.Request().Context()
	cur, err := h.store.GetService(ctx, serviceID)
	if err != nil {
		return writeError(c, err)
	}
	if cur.OwnerID == nil || *cur.OwnerID != id.UserID {
		return writeError(c, repository.ErrForbidden)
	}
	var body serviceInput
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	body.apply(cur)
	if msg := validateService(cur); msg != "" {
		return invalid(c, msg)
	}
	if err := h.store.UpdateService(ctx, cur); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, cur)
}

// AdminListServices handles GET /v1/admin/services with optional ?status=.
func (h *ServiceHandler) AdminListServices(c echo.Context) error {
	status := model.ModerationStatus(strings.TrimSpace(c.QueryParam("status")))
	if status != "" && !status.Valid() {
		return invalid(c, "unknown status")
	}
	list, err := h.store.ListServices(c.Request().Context(), model.ServiceFilter{Status: status})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

// ApproveService handles POST /v1/admin/services/:id/approve[?featured=bool].
func (h *ServiceHandler) ApproveService(c echo.Context) error {
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

// RejectService handles POST /v1/admin/services/:id/reject.  A rejected
// service is never featured.
func (h *ServiceHandler) RejectService(c echo.Context) error {
	status := model.ModerationRejected
	off := false
	return h.moderate(c, &status, &off)
}

// FeatureService handles POST /v1/admin/services/:id/feature?on=bool.
// Featuring a service also approves it.
func (h *ServiceHandler) FeatureService(c echo.Context) error {
	on, set, err := parseBool(c, "on")
	if err != nil {
		return badRequest(c, "on must be a boolean")
	}
	if !set {
		on = true
	}
	var status *model.ModerationStatus
	if on {
		approved := model.ModerationApproved
		status = &approved
	}
	return h.moderate(c, status, &on)
}

func (h *ServiceHandler) moderate(c echo.Context, status *model.ModerationStatus, featured *bool) error {
	serviceID, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid service id")
	}
	vs, err := h.store.ModerateService(c.Request().Context(), serviceID, status, featured)
	if err != nil {
		return writeError(c, err)
	}
	c.Logger().Infoj(log.JSON{"msg": "service moderated", "service_id": vs.ID, "status": vs.Status, "featured": vs.IsFeatured})
	return c.JSON(http.StatusOK, vs)
}

// DeleteService handles DELETE /v1/admin/services/:id.
func (h *ServiceHandler) DeleteService(c echo.Context) error {
	serviceID, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid service id")
	}
	if err := h.store.DeleteService(c.Request().Context(), serviceID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
