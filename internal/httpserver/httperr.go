package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cklam2/canteen/internal/auth"
	"github.com/cklam2/canteen/internal/menu"
	"github.com/cklam2/canteen/internal/order"
)

// serviceError maps sentinel service errors onto HTTP status codes. Anything
// unrecognized is a store failure and surfaces as a plain 500.
func serviceError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, order.ErrValidation),
		errors.Is(err, menu.ErrValidation),
		errors.Is(err, auth.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, "bad credentials")
	case errors.Is(err, order.ErrNotFound),
		errors.Is(err, menu.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrConflict),
		errors.Is(err, auth.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

func studentID(c echo.Context) string {
	s, _ := c.Get("student_id").(string)
	return s
}

func studentName(c echo.Context) string {
	s, _ := c.Get("student_name").(string)
	return s
}

func isStaff(c echo.Context) bool {
	role, _ := c.Get("role").(string)
	return role == auth.RoleStaff
}
