package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	AuthHandler  *AuthHTTP
	MenuHandler  *MenuHTTP
	CartHandler  *CartHTTP
	OrderHandler *OrderHTTP
	AdminHandler *AdminHTTP
	APIHandler   *APIHTTP

	JWTSecret []byte
	APIToken  string
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.POST("/auth/register", d.AuthHandler.Register)
	e.POST("/auth/login", d.AuthHandler.Login)

	user := e.Group("", RequireUser(d.JWTSecret))
	user.GET("/menu", d.MenuHandler.GetMenu)
	user.GET("/drinks", d.MenuHandler.GetDrinks)

	user.GET("/cart", d.CartHandler.GetCart)
	user.POST("/cart/items", d.CartHandler.AddItem)
	user.PATCH("/cart/items/:id", d.CartHandler.SetQuantity)
	user.DELETE("/cart/items/:id", d.CartHandler.RemoveItem)
	user.DELETE("/cart", d.CartHandler.ClearCart)

	user.POST("/orders", d.CartHandler.Checkout)
	user.GET("/orders", d.OrderHandler.ListMine)
	user.GET("/orders/:id", d.OrderHandler.GetOrder)

	admin := e.Group("/admin", RequireStaff(d.JWTSecret))
	admin.GET("/orders", d.AdminHandler.ListOrders)
	admin.PATCH("/orders/:id/status", d.AdminHandler.TransitionOrder)
	admin.GET("/stats", d.AdminHandler.Stats)
	admin.GET("/search", d.AdminHandler.SearchMenu)

	admin.GET("/menu", d.AdminHandler.ListAllMenuItems)
	admin.POST("/menu", d.AdminHandler.CreateMenuItem)
	admin.PATCH("/menu/:id", d.AdminHandler.PatchMenuItem)
	admin.DELETE("/menu/:id", d.AdminHandler.DeleteMenuItem)

	admin.GET("/drinks", d.AdminHandler.ListAllDrinks)
	admin.POST("/drinks", d.AdminHandler.CreateDrink)
	admin.PATCH("/drinks/:id", d.AdminHandler.PatchDrink)
	admin.DELETE("/drinks/:id", d.AdminHandler.DeleteDrink)

	api := e.Group("/api", RequireAPIToken(d.APIToken))
	api.GET("/students", d.APIHandler.ListStudents)
	api.GET("/students/:id", d.APIHandler.GetStudent)
	api.GET("/stats", d.APIHandler.Stats)
}
