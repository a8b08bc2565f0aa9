package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cklam2/canteen/internal/logging"
	"github.com/cklam2/canteen/internal/order"
)

type OrderHTTP struct {
	Svc *order.Service
}

func (h *OrderHTTP) ListMine(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_mine")

	orders, err := h.Svc.ListByStudent(ctx, studentID(c))
	if err != nil {
		l.Error("list_mine_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, orders)
}

// GetOrder serves a single order to its owner; staff may read any order.
func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get")

	o, err := h.Svc.Get(ctx, c.Param("id"))
	if err != nil {
		he := serviceError(err)
		if he.Code >= 500 {
			l.Error("get_order_error", "status", he.Code, "error", err)
		} else {
			l.Warn("get_order_error", "status", he.Code, "error", err)
		}
		return he
	}

	if o.StudentID != studentID(c) && !isStaff(c) {
		l.Warn("get_order_error", "status", 403, "order_id", o.ID)
		return echo.NewHTTPError(http.StatusForbidden, "not your order")
	}
	return c.JSON(http.StatusOK, o)
}
