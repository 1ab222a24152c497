package dto

import "github.com/shopspring/decimal"

type BillItemRequest struct {
	ItemID   int64           `json:"item_id"   validate:"required,min=1"`
	ItemName string          `json:"item_name" validate:"required"`
	Quantity int             `json:"quantity"  validate:"required,min=1"`
	Price    decimal.Decimal `json:"price"     validate:"min=0"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// PlaceBillRequest is the body of POST /bills.
// BillNumber comes from the advisory daily-count endpoint — it is display
// data, not an identity, and is stored as sent.
type PlaceBillRequest struct {
	RestaurantID  int64             `json:"restaurant_id"  validate:"required,min=1"`
	BillNumber    int               `json:"bill_number"    validate:"min=0"`
	BillDate      string            `json:"bill_date"      validate:"omitempty"`
	EmployeeID    *int64            `json:"employee_id"`
	EmployeeName  string            `json:"employee_name"  validate:"required"`
	CustomerName  string            `json:"customer_name"`
	CustomerPhone string            `json:"customer_phone"`
	CustomerEmail string            `json:"customer_email" validate:"omitempty,email"`
	PaymentMethod string            `json:"payment_method" validate:"required"`
	Items         []BillItemRequest `json:"items"          validate:"required,min=1,dive"`
	TotalAmount   decimal.Decimal   `json:"total_amount"   validate:"min=0"`
}

type PlaceBillResponse struct {
	Success bool  `json:"success"`
	BillID  int64 `json:"billId"`
}

type BillItemResponse struct {
	ItemID   int64           `json:"item_id"`
	ItemName string          `json:"item_name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type BillResponse struct {
	ID            int64              `json:"id"`
	BillNumber    int                `json:"bill_number"`
	BillDate      string             `json:"bill_date"`
	EmployeeName  string             `json:"employee_name"`
	CustomerName  string             `json:"customer_name,omitempty"`
	CustomerPhone string             `json:"customer_phone,omitempty"`
	PaymentMethod string             `json:"payment_method"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	Items         []BillItemResponse `json:"items,omitempty"`
}

// BillFilter is bound from the query string of GET /bills/:restaurantId.
type BillFilter struct {
	Date  string `form:"date"`
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type BillListResponse struct {
	Data  []BillResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

type BillCountResponse struct {
	Count int64 `json:"count"`
}
