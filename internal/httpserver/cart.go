package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/cklam2/canteen/internal/cart"
	"github.com/cklam2/canteen/internal/logging"
	"github.com/cklam2/canteen/internal/order"
	"github.com/cklam2/canteen/internal/repo"
	"github.com/cklam2/canteen/internal/transport"
)

type CartHTTP struct {
	Carts  *cart.Store
	Repo   *repo.GormRepo
	Orders *order.Service
}

func (h *CartHTTP) cartResponse(items []cart.Item) transport.CartResponse {
	return transport.CartResponse{
		Items:     items,
		Lines:     cart.Price(items),
		Total:     cart.Total(items),
		ItemCount: cart.ItemCount(items),
	}
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	items := h.Carts.Items(studentID(c))
	return c.JSON(http.StatusOK, h.cartResponse(items))
}

// AddItem resolves the referenced menu entry server-side: list prices and
// discount flags come from the store, never from the client payload.
func (h *CartHTTP) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_item")

	var req transport.AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_item_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	var item cart.Item
	switch cart.ItemKind(req.Type) {
	case cart.KindMeal:
		meal, err := h.Repo.GetMenuItem(ctx, req.ItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				l.Warn("add_item_error", "status", 404, "item_id", req.ItemID)
				return echo.NewHTTPError(http.StatusNotFound, "menu item not found")
			}
			l.Error("add_item_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
		if !meal.Available {
			l.Warn("add_item_error", "status", 409, "reason", "unavailable", "item_id", req.ItemID)
			return echo.NewHTTPError(http.StatusConflict, "menu item unavailable")
		}
		item = cart.Item{
			ID:                  meal.ID,
			Name:                meal.Name,
			Price:               meal.Price,
			Quantity:            req.Quantity,
			Image:               meal.Image,
			Type:                cart.KindMeal,
			HasDiscountedDrinks: meal.HasDiscountedDrinks,
		}
	case cart.KindDrink:
		drink, err := h.Repo.GetDrink(ctx, req.ItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				l.Warn("add_item_error", "status", 404, "item_id", req.ItemID)
				return echo.NewHTTPError(http.StatusNotFound, "drink not found")
			}
			l.Error("add_item_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
		if !drink.Available {
			l.Warn("add_item_error", "status", 409, "reason", "unavailable", "item_id", req.ItemID)
			return echo.NewHTTPError(http.StatusConflict, "drink unavailable")
		}
		item = cart.Item{
			ID:              drink.ID,
			Name:            drink.Name,
			Price:           drink.OriginalPrice,
			Quantity:        req.Quantity,
			Image:           drink.Image,
			Type:            cart.KindDrink,
			OriginalPrice:   drink.OriginalPrice,
			DiscountedPrice: drink.DiscountedPrice,
		}
	default:
		l.Warn("add_item_error", "status", 400, "reason", "bad type", "type", req.Type)
		return echo.NewHTTPError(http.StatusBadRequest, "type must be meal or drink")
	}

	items := h.Carts.Add(studentID(c), item)
	return c.JSON(http.StatusOK, h.cartResponse(items))
}

func (h *CartHTTP) SetQuantity(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "cart.set_quantity")

	var req transport.SetQuantityRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("set_quantity_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	items, found := h.Carts.SetQuantity(studentID(c), c.Param("id"), req.Quantity)
	if !found {
		l.Warn("set_quantity_error", "status", 404, "item_id", c.Param("id"))
		return echo.NewHTTPError(http.StatusNotFound, "item not in cart")
	}
	return c.JSON(http.StatusOK, h.cartResponse(items))
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	items, found := h.Carts.Remove(studentID(c), c.Param("id"))
	if !found {
		return echo.NewHTTPError(http.StatusNotFound, "item not in cart")
	}
	return c.JSON(http.StatusOK, h.cartResponse(items))
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	h.Carts.Clear(studentID(c))
	return c.JSON(http.StatusOK, h.cartResponse(nil))
}

// Checkout converts the session cart into an order. The cart is cleared only
// after the order is durably created.
func (h *CartHTTP) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.checkout")

	sid := studentID(c)
	items := h.Carts.Items(sid)

	created, err := h.Orders.Checkout(ctx, sid, studentName(c), items)
	if err != nil {
		he := serviceError(err)
		if he.Code >= 500 {
			l.Error("checkout_error", "status", he.Code, "error", err)
		} else {
			l.Warn("checkout_error", "status", he.Code, "error", err)
		}
		return he
	}

	h.Carts.Clear(sid)
	l.Info("checkout_success", "order_id", created.ID, "order_number", created.OrderNumber, "total", created.Total)
	return c.JSON(http.StatusCreated, created)
}
