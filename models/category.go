package models

// CategoryServices groups services of the same kind (dry cleaning, ironing, etc.)
type CategoryServices struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Active      *bool     `json:"active"`
	Services    []Service `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"services,omitempty"`
}

// TableName specifies the table name for the CategoryServices model
func (CategoryServices) TableName() string {
	return "categories_services"
}
