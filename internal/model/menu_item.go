package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuItem is a row in menu_<restaurantID>.
// Category is free text — the billing reports group by it as-is.
type MenuItem struct {
	ID          int64 `gorm:"primaryKey"`
	ItemName    string
	Description string
	Price       decimal.Decimal
	Category    string
	Available   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
