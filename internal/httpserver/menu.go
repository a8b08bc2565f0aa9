package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cklam2/canteen/internal/logging"
	"github.com/cklam2/canteen/internal/menu"
)

type MenuHTTP struct {
	Svc *menu.Service
}

// GetMenu lists available meals only; unavailable entries are hidden from
// students but still visible through the admin listing.
func (h *MenuHTTP) GetMenu(c echo.Context) error {
	ctx := c.Request().Context()

	items, err := h.Svc.ListMenuItems(ctx, true)
	if err != nil {
		logging.FromContext(ctx).Error("menu_list_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *MenuHTTP) GetDrinks(c echo.Context) error {
	ctx := c.Request().Context()

	drinks, err := h.Svc.ListDrinks(ctx, true)
	if err != nil {
		logging.FromContext(ctx).Error("drinks_list_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, drinks)
}
