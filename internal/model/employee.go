package model

import "time"

// Employee is a row in employees_<restaurantID>. Registered users are
// mirrored here; additional non-login staff can be added directly.
// Email is unique within the tenant table only.
type Employee struct {
	ID        int64 `gorm:"primaryKey"`
	Name      string
	Email     string
	Phone     string
	Role      string
	CreatedAt time.Time
}
