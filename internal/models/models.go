package models

import (
	"time"
)

// OrderStatus is the lifecycle state of an order. Transitions are validated
// by the order service against an explicit successor table.
type OrderStatus string

const (
	StatusReceived    OrderStatus = "received"
	StatusPreparing   OrderStatus = "preparing"
	StatusReady       OrderStatus = "ready"
	StatusTakenUnpaid OrderStatus = "taken-unpaid"
	StatusCompleted   OrderStatus = "completed"
)

// AllStatuses lists every status in lifecycle order.
var AllStatuses = []OrderStatus{
	StatusReceived,
	StatusPreparing,
	StatusReady,
	StatusTakenUnpaid,
	StatusCompleted,
}

func (s OrderStatus) Valid() bool {
	for _, st := range AllStatuses {
		if s == st {
			return true
		}
	}
	return false
}

type Order struct {
	ID          string      `gorm:"primaryKey"          json:"id"`
	OrderNumber int64       `gorm:"not null;index"      json:"order_number"`
	StudentID   string      `gorm:"index;not null"      json:"student_id"`
	StudentName string      `gorm:"not null"            json:"student_name"`
	Items       []OrderItem `gorm:"foreignKey:OrderID"  json:"items"`
	Total       int64       `gorm:"not null"            json:"total"`
	Status      OrderStatus `gorm:"not null;index"      json:"status"`
	CreatedAt   time.Time   `gorm:"not null;index"      json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// OrderItem is a line frozen at checkout: the name and unit price are copies,
// not references to the menu, so later menu edits never touch placed orders.
type OrderItem struct {
	ID        uint   `gorm:"primaryKey"                  json:"id"`
	OrderID   string `gorm:"index;not null"              json:"order_id"`
	Name      string `gorm:"not null"                    json:"name"`
	Quantity  int    `gorm:"not null;check:quantity>0"   json:"quantity"`
	UnitPrice int64  `gorm:"not null"                    json:"unit_price"`
}

type MenuItem struct {
	ID                  string    `gorm:"primaryKey"      json:"id"`
	Name                string    `gorm:"not null"        json:"name"`
	Price               int64     `gorm:"not null"        json:"price"`
	Image               string    `json:"image"`
	Category            string    `gorm:"index"           json:"category"`
	Calories            int       `json:"calories,omitempty"`
	HasDiscountedDrinks bool      `gorm:"not null"        json:"has_discounted_drinks"`
	Available           bool      `gorm:"not null;index"  json:"available"`
	CreatedAt           time.Time `json:"created_at"`
}

type Drink struct {
	ID              string    `gorm:"primaryKey"      json:"id"`
	Name            string    `gorm:"not null"        json:"name"`
	OriginalPrice   int64     `gorm:"not null"        json:"original_price"`
	DiscountedPrice int64     `gorm:"not null"        json:"discounted_price"`
	Image           string    `json:"image"`
	Available       bool      `gorm:"not null;index"  json:"available"`
	CreatedAt       time.Time `json:"created_at"`
}

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	StudentID    string `gorm:"uniqueIndex;not null"     json:"student_id"`
	Name         string `gorm:"not null"                 json:"name"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null"                 json:"role"`
}

// OrderCounter backs order number assignment. A single row is incremented
// inside the checkout transaction so numbers stay unique and monotonic.
type OrderCounter struct {
	ID    uint  `gorm:"primaryKey"`
	Value int64 `gorm:"not null"`
}
