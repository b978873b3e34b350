package models

import (
	"github.com/shopspring/decimal"
)

// Service represents a billable service offered by the shop.
// Price is mutable over time; orders snapshot it into their items at
// creation so later price changes never rewrite past orders.
type Service struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	CategoryID   uint             `gorm:"not null;index;uniqueIndex:idx_services_category_name" json:"category_id"`
	Category     CategoryServices `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Name         string           `gorm:"not null;uniqueIndex:idx_services_category_name" json:"name"` // unique within its category
	Description  string           `gorm:"type:text" json:"description"`
	Price        decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"price"`
	EstimateTime int              `gorm:"not null;default:24" json:"estimate_time"` // estimated duration in hours
	Active       *bool            `json:"active"`
}

// TableName specifies the table name for the Service model
func (Service) TableName() string {
	return "services"
}
