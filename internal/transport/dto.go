package transport

import (
	"github.com/cklam2/canteen/internal/cart"
	"github.com/cklam2/canteen/internal/models"
	"github.com/cklam2/canteen/internal/stats"
)

type MenuItemRequest struct {
	Name                string `json:"name"`
	Price               int64  `json:"price"`
	Image               string `json:"image"`
	Category            string `json:"category"`
	Calories            int    `json:"calories"`
	HasDiscountedDrinks bool   `json:"has_discounted_drinks"`
	Available           bool   `json:"available"`
}

type PatchMenuItemRequest struct {
	Name                *string `json:"name"`
	Price               *int64  `json:"price"`
	Image               *string `json:"image"`
	Category            *string `json:"category"`
	Calories            *int    `json:"calories"`
	HasDiscountedDrinks *bool   `json:"has_discounted_drinks"`
	Available           *bool   `json:"available"`
}

type DrinkRequest struct {
	Name            string `json:"name"`
	OriginalPrice   int64  `json:"original_price"`
	DiscountedPrice int64  `json:"discounted_price"`
	Image           string `json:"image"`
	Available       bool   `json:"available"`
}

type PatchDrinkRequest struct {
	Name            *string `json:"name"`
	OriginalPrice   *int64  `json:"original_price"`
	DiscountedPrice *int64  `json:"discounted_price"`
	Image           *string `json:"image"`
	Available       *bool   `json:"available"`
}

// AddCartItemRequest references a menu item or drink by id; prices and
// discount flags are resolved server-side from the menu, never trusted
// from the client.
type AddCartItemRequest struct {
	ItemID   string `json:"item_id"`
	Type     string `json:"type"` // "meal" | "drink"
	Quantity int    `json:"quantity"`
}

type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type CartResponse struct {
	Items     []cart.Item `json:"items"`
	Lines     []cart.Line `json:"lines"`
	Total     int64       `json:"total"`
	ItemCount int         `json:"item_count"`
}

type TransitionRequest struct {
	Status models.OrderStatus `json:"status"`
}

type RegisterRequest struct {
	StudentID string `json:"student_id"`
	Name      string `json:"name"`
	Password  string `json:"password"`
}

type LoginRequest struct {
	StudentID string `json:"student_id"`
	Password  string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

type StudentsResponse struct {
	Students   []stats.Student `json:"students"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"totalPages"`
}

type StudentOrder struct {
	OrderNumber int64              `json:"orderNumber"`
	Total       int64              `json:"total"`
	Status      models.OrderStatus `json:"status"`
	CreatedAt   string             `json:"createdAt"`
}

type StudentDetail struct {
	stats.Student
	Orders []StudentOrder `json:"orders"`
}
