package models

import (
	"time"
)

// Customer represents a customer of the pressing shop
type Customer struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FirstName    string    `gorm:"not null" json:"first_name"`
	LastName     string    `gorm:"not null" json:"last_name"`
	Phone        string    `gorm:"uniqueIndex;not null" json:"phone"` // unique identifier for walk-in lookup
	Email        *string   `json:"email"`
	Address      string    `gorm:"type:text" json:"address"`
	Active       *bool     `json:"active"` // nil = unset, true = active, false = inactive
	RegisteredAt time.Time `gorm:"autoCreateTime" json:"registered_at"`
	Orders       []Order   `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"-"`
}

// FullName returns the customer's display name
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// TableName specifies the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
