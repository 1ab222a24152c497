package model

import "time"

// User roles. Every role also carries a mirrored Employee row in the
// tenant's employees table (kept consistent transactionally at signup).
const (
	RoleOwner   = "owner"
	RoleManager = "manager"
	RoleStaff   = "staff"
)

// User is a login identity. Email is globally unique; RestaurantID scopes
// every tenant-table query the user is allowed to make.
type User struct {
	ID           int64  `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	Phone        string
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"type:varchar(20);not null"`
	RestaurantID int64  `gorm:"not null"`
	CreatedAt    time.Time
}

func (User) TableName() string { return "users" }
