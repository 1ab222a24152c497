package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill is a row in bills_<restaurantID>, written atomically with its items.
//
// BillNumber is a per-day display sequence suggested by a separate count
// query. It is advisory only: concurrent checkouts on the same day can
// legitimately receive the same number. ID is the real identity.
type Bill struct {
	ID            int64 `gorm:"primaryKey"`
	RestaurantID  int64
	BillNumber    int
	BillDate      time.Time
	EmployeeID    *int64
	EmployeeName  string
	CustomerName  string
	CustomerPhone string
	PaymentMethod string
	TotalAmount   decimal.Decimal
	CreatedAt     time.Time
}

// BillItem is a row in bill_items_<restaurantID>.
// Subtotal == round(Quantity × Price, 2) is enforced by the service before
// the row is written; the sum of subtotals matching the parent bill's
// TotalAmount is not DB-enforced.
type BillItem struct {
	ID       int64 `gorm:"primaryKey"`
	BillID   int64
	ItemID   int64
	ItemName string
	Quantity int
	Price    decimal.Decimal
	Subtotal decimal.Decimal
}
