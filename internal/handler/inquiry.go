package handler

import (
	"context"
	"net/http"
	"net/mail"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/iliyamo/wedding-venue-booking/internal/i18n"
	"github.com/iliyamo/wedding-venue-booking/internal/model"
	"github.com/iliyamo/wedding-venue-booking/internal/repository"
)

// InquiryStore is the persistence needed by the inquiry endpoints.  Venue
// and service lookups confirm that the addressee is publicly listed.
type InquiryStore interface {
	CreateInquiry(ctx context.Context, in *model.Inquiry) error
	ListInquiriesForOwner(ctx context.Context, ownerID uint64) ([]model.Inquiry, error)
	MarkInquiryRead(ctx context.Context, id, ownerID uint64) error
	FindVenue(ctx context.Context, id uint64) (*model.Venue, error)
	GetService(ctx context.Context, id uint64) (*model.VendorService, error)
}

// InquiryHandler accepts contact requests and lets venue owners read them.
type InquiryHandler struct {
	store InquiryStore
}

// NewInquiryHandler constructs an InquiryHandler and panics on a nil store.
func NewInquiryHandler(store InquiryStore) *InquiryHandler {
	if store == nil {
		panic("nil store passed to NewInquiryHandler")
	}
	return &InquiryHandler{store: store}
}

// CreateInquiry handles POST /v1/inquiries.  Anyone may send one; the
// caller's identity is attached when a token was presented.  Unlike
// reservations, inquiries never conflict with each other.
func (h *InquiryHandler) CreateInquiry(c echo.Context) error {
	var body struct {
		VenueID    *uint64 `json:"venue_id"`
		ServiceID  *uint64 `json:"service_id"`
		Name       string  `json:"name"`
		Email      string  `json:"email"`
		Phone      *string `json:"phone"`
		Message    string  `json:"message"`
		EventDate  *string `json:"event_date"`
		GuestCount *int    `json:"guest_count"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	in := &model.Inquiry{
		VenueID:    body.VenueID,
		ServiceID:  body.ServiceID,
		Name:       strings.TrimSpace(body.Name),
		Email:      strings.TrimSpace(body.Email),
		Phone:      trimmed(body.Phone),
		Message:    strings.TrimSpace(body.Message),
		GuestCount: body.GuestCount,
	}
	switch {
	case (in.VenueID == nil) == (in.ServiceID == nil):
		return invalid(c, "exactly one of venue_id and service_id is required")
	case in.Name == "" || in.Email == "" || in.Message == "":
		return invalid(c, "name, email and message are required")
	case in.GuestCount != nil && *in.GuestCount < 1:
		return invalid(c, "guest_count must be positive")
	}
	addr, err := mail.ParseAddress(in.Email)
	if err != nil {
		return invalid(c, "invalid email")
	}
	in.Email = addr.Address
	if raw := trimmed(body.EventDate); raw != nil {
		d, err := model.ParseDate(*raw)
		if err != nil {
			return invalid(c, err.Error())
		}
		in.EventDate = &d
	}

	ctx := c.Request().Context()
	if in.VenueID != nil {
		v, err := h.store.FindVenue(ctx, *in.VenueID)
		if err != nil {
			return writeError(c, err)
		}
		if v.Status != model.ModerationApproved {
			return writeError(c, repository.ErrNotFound)
		}
	} else {
		vs, err := h.store.GetService(ctx, *in.ServiceID)
		if err != nil {
			return writeError(c, err)
		}
		if vs.Status != model.ModerationApproved {
			return writeError(c, repository.ErrNotFound)
		}
	}
	if id := identity(c); id != nil {
		uid := id.UserID
		in.CustomerID = &uid
	}

	if err := h.store.CreateInquiry(ctx, in); err != nil {
		return writeError(c, err)
	}
	c.Logger().Infoj(log.JSON{"msg": "inquiry created", "inquiry_id": in.ID})
	return c.JSON(http.StatusCreated, in)
}

// ListOwnerInquiries handles GET /v1/owner/inquiries.
func (h *InquiryHandler) ListOwnerInquiries(c echo.Context) error {
	id := identity(c)
	if id == nil {
		return fail(c, http.StatusUnauthorized, i18n.MsgUnauthorized, "")
	}
	list, err := h.store.ListInquiriesForOwner(c.Request().Context(), id.UserID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

// MarkRead handles POST /v1/owner/inquiries/:id/read.
func (h *InquiryHandler) MarkRead(c echo.Context) error {
	id := identity(c)
	if id == nil {
		return fail(c, http.StatusUnauthorized, i18n.MsgUnauthorized, "")
	}
	inquiryID, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid inquiry id")
	}
	if err := h.store.MarkInquiryRead(c.Request().Context(), inquiryID, id.UserID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
