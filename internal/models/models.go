package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Identifiers are caller-assigned: the schema declares plain integer
// primary keys and the loader supplies ids straight from the CSVs.

type User struct {
	ID         int64     `json:"user_id"`
	Email      string    `json:"email"`
	SignupDate time.Time `json:"signup_date"`
	Country    string    `json:"country"`
	UserType   string    `json:"user_type"`
}

type Product struct {
	ID          int64           `json:"product_id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	CreatedAt   time.Time       `json:"created_at"`
}

type Order struct {
	ID          int64           `json:"order_id"`
	UserID      int64           `json:"user_id"`
	OrderDate   time.Time       `json:"order_date"`
	Status      string          `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Items       []OrderItem     `json:"items,omitempty"`
}

type OrderItem struct {
	ID        int64           `json:"order_item_id"`
	OrderID   int64           `json:"order_id"`
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// ProductReview may reference a product and a user, but neither link is
// required by the schema.
type ProductReview struct {
	ID         int64     `json:"review_id"`
	ProductID  *int64    `json:"product_id,omitempty"`
	UserID     *int64    `json:"user_id,omitempty"`
	Rating     int       `json:"rating"`
	ReviewText string    `json:"review_text"`
	ReviewDate time.Time `json:"review_date"`
}

// Order statuses observed in the data. The column is an open string
// enumeration; nothing in the schema restricts it to these values.
const (
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
	OrderStatusReturned  = "returned"
)

const (
	UserTypeRegular = "regular"
	UserTypeVIP     = "vip"
)
