package handler // handler defines http handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"golang.org/x/text/language"

	"github.com/iliyamo/wedding-venue-booking/internal/i18n"
	"github.com/iliyamo/wedding-venue-booking/internal/middleware"
	"github.com/iliyamo/wedding-venue-booking/internal/model"
	"github.com/iliyamo/wedding-venue-booking/internal/repository"
	"github.com/iliyamo/wedding-venue-booking/internal/service"
)

// identity returns the authenticated caller or nil for anonymous requests.
func identity(c echo.Context) *model.Identity { return middleware.IdentityFrom(c) }

// lang negotiates the response language of the request.
func lang(c echo.Context) language.Tag { return i18n.FromRequest(c.Request()) }

// parseID reads a positive numeric path parameter.
func parseID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// parseBool reads an optional boolean query parameter; ok is false when it
// is absent.
func parseBool(c echo.Context, name string) (val, ok bool, err error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return false, false, nil
	}
	val, err = strconv.ParseBool(raw)
	return val, err == nil, err
}

// fail writes a localized error body.  detail, when non-empty, carries the
// untranslated specifics such as which field was rejected.
func fail(c echo.Context, status int, key, detail string) error {
	body := echo.Map{"error": key, "message": i18n.T(lang(c), key)}
	if detail != "" {
		body["detail"] = detail
	}
	return c.JSON(status, body)
}

func badRequest(c echo.Context, detail string) error {
	return fail(c, http.StatusBadRequest, i18n.MsgBadRequest, detail)
}

func invalid(c echo.Context, detail string) error {
	return fail(c, http.StatusBadRequest, i18n.MsgValidation, detail)
}

// writeError maps service and repository errors onto HTTP responses.  Any
// error it does not recognise is logged and reported as a generic 500.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		return fail(c, http.StatusUnauthorized, i18n.MsgUnauthorized, "")
	case errors.Is(err, service.ErrForbidden), errors.Is(err, repository.ErrForbidden):
		return fail(c, http.StatusForbidden, i18n.MsgForbidden, "")
	case errors.Is(err, service.ErrNotFound), errors.Is(err, repository.ErrNotFound):
		return fail(c, http.StatusNotFound, i18n.MsgNotFound, "")
	case errors.Is(err, service.ErrCapacityExceeded):
		return fail(c, http.StatusUnprocessableEntity, i18n.MsgCapacityExceeded, err.Error())
	case errors.Is(err, service.ErrDateConflict):
		return fail(c, http.StatusConflict, i18n.MsgDateConflict, "")
	case errors.Is(err, service.ErrInvalidTransition):
		return fail(c, http.StatusConflict, i18n.MsgInvalidTransition, err.Error())
	case errors.Is(err, service.ErrValidation):
		return fail(c, http.StatusBadRequest, i18n.MsgValidation, err.Error())
	}
	c.Logger().Errorj(log.JSON{
		"msg":    "request failed",
		"method": c.Request().Method,
		"path":   c.Path(),
		"error":  err.Error(),
	})
	return fail(c, http.StatusInternalServerError, i18n.MsgInternal, "")
}

// trimmed returns nil for a nil or blank pointer and the trimmed value
// otherwise.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
