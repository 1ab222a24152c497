package model

import "time"

// Restaurant is a tenant. Created exactly once at owner registration,
// together with the tenant's table set.
// SecretCode gates manager/staff onboarding and is immutable after creation.
type Restaurant struct {
	ID         int64  `gorm:"primaryKey"`
	Name       string `gorm:"not null"`
	OwnerName  string `gorm:"not null"`
	Phone      string
	District   string
	SecretCode string `gorm:"not null"`
	Logo       []byte `gorm:"type:bytea"`
	LogoMime   string
	CreatedAt  time.Time
}

func (Restaurant) TableName() string { return "restaurants" }
