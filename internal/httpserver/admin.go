package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cklam2/canteen/internal/logging"
	"github.com/cklam2/canteen/internal/menu"
	"github.com/cklam2/canteen/internal/models"
	"github.com/cklam2/canteen/internal/order"
	"github.com/cklam2/canteen/internal/repo"
	"github.com/cklam2/canteen/internal/search"
	"github.com/cklam2/canteen/internal/stats"
	"github.com/cklam2/canteen/internal/transport"
)

type AdminHTTP struct {
	Orders *order.Service
	Menu   *menu.Service
	Repo   *repo.GormRepo
	Search *search.Client
}

// ListOrders serves the staff dashboard: all orders newest first, optionally
// narrowed to one status. The dashboard polls this endpoint.
func (h *AdminHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.list_orders")

	var (
		orders []models.Order
		err    error
	)
	if status := c.QueryParam("status"); status != "" {
		orders, err = h.Orders.ListByStatus(ctx, models.OrderStatus(status))
	} else {
		orders, err = h.Orders.List(ctx)
	}
	if err != nil {
		he := serviceError(err)
		if he.Code >= 500 {
			l.Error("list_orders_error", "status", he.Code, "error", err)
		} else {
			l.Warn("list_orders_error", "status", he.Code, "error", err)
		}
		return he
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *AdminHTTP) TransitionOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.transition_order")

	var req transport.TransitionRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("transition_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	updated, err := h.Orders.Transition(ctx, c.Param("id"), req.Status)
	if err != nil {
		he := serviceError(err)
		if he.Code >= 500 {
			l.Error("transition_error", "status", he.Code, "error", err)
		} else {
			l.Warn("transition_error", "status", he.Code, "error", err)
		}
		return he
	}

	l.Info("transition_success", "order_id", updated.ID, "status", updated.Status)
	return c.JSON(http.StatusOK, updated)
}

func (h *AdminHTTP) Stats(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.stats")

	orders, err := h.Repo.ScanOrders(ctx)
	if err != nil {
		l.Error("stats_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, stats.Summarize(orders, time.Now()))
}

func (h *AdminHTTP) SearchMenu(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.search_menu")

	if h.Search == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search not configured")
	}

	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q required")
	}
	from, _ := strconv.Atoi(c.QueryParam("from"))
	size, err := strconv.Atoi(c.QueryParam("size"))
	if err != nil || size <= 0 || size > 100 {
		size = 20
	}

	total, items, err := h.Search.Search(ctx, query, from, size)
	if err != nil {
		l.Error("search_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"total": total,
		"items": items,
	})
}

func (h *AdminHTTP) ListAllMenuItems(c echo.Context) error {
	ctx := c.Request().Context()

	items, err := h.Menu.ListMenuItems(ctx, false)
	if err != nil {
		logging.FromContext(ctx).Error("admin_menu_list_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *AdminHTTP) CreateMenuItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.create_menu_item")

	var req transport.MenuItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_menu_item_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Menu.CreateMenuItem(ctx, req)
	if err != nil {
		he := serviceError(err)
		l.Warn("create_menu_item_error", "status", he.Code, "error", err)
		return he
	}
	return c.JSON(http.StatusCreated, item)
}

func (h *AdminHTTP) PatchMenuItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.patch_menu_item")

	var req transport.PatchMenuItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("patch_menu_item_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Menu.PatchMenuItem(ctx, c.Param("id"), req)
	if err != nil {
		he := serviceError(err)
		l.Warn("patch_menu_item_error", "status", he.Code, "error", err)
		return he
	}
	return c.JSON(http.StatusOK, item)
}

func (h *AdminHTTP) DeleteMenuItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.delete_menu_item")

	if err := h.Menu.DeleteMenuItem(ctx, c.Param("id")); err != nil {
		he := serviceError(err)
		l.Warn("delete_menu_item_error", "status", he.Code, "error", err)
		return he
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHTTP) ListAllDrinks(c echo.Context) error {
	ctx := c.Request().Context()

	drinks, err := h.Menu.ListDrinks(ctx, false)
	if err != nil {
		logging.FromContext(ctx).Error("admin_drinks_list_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, drinks)
}

func (h *AdminHTTP) CreateDrink(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.create_drink")

	var req transport.DrinkRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_drink_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	drink, err := h.Menu.CreateDrink(ctx, req)
	if err != nil {
		he := serviceError(err)
		l.Warn("create_drink_error", "status", he.Code, "error", err)
		return he
	}
	return c.JSON(http.StatusCreated, drink)
}

func (h *AdminHTTP) PatchDrink(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.patch_drink")

	var req transport.PatchDrinkRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("patch_drink_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	drink, err := h.Menu.PatchDrink(ctx, c.Param("id"), req)
	if err != nil {
		he := serviceError(err)
		l.Warn("patch_drink_error", "status", he.Code, "error", err)
		return he
	}
	return c.JSON(http.StatusOK, drink)
}

func (h *AdminHTTP) DeleteDrink(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.delete_drink")

	if err := h.Menu.DeleteDrink(ctx, c.Param("id")); err != nil {
		he := serviceError(err)
		l.Warn("delete_drink_error", "status", he.Code, "error", err)
		return he
	}
	return c.NoContent(http.StatusNoContent)
}
