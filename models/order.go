package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order statuses. Transitions are free-form: the shop moves orders
// backward when garments come back or a mistake is fixed, so no ordering
// is enforced beyond membership in this set.
const (
	StatusPending    = "PENDING"
	StatusInProgress = "IN_PROGRESS"
	StatusReady      = "READY"
	StatusDelivered  = "DELIVERED"
	StatusCancelled  = "CANCELLED"
)

// OrderStatuses lists every legal order status, in workflow order.
var OrderStatuses = []string{
	StatusPending,
	StatusInProgress,
	StatusReady,
	StatusDelivered,
	StatusCancelled,
}

// IsValidStatus reports whether s is a member of the status enumeration.
func IsValidStatus(s string) bool {
	for _, status := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Order represents a customer order. total_amount and amount_paid are
// derived values: total_amount is the sum of the item totals, frozen at
// creation; amount_paid is the running sum of payments, maintained with a
// storage-level increment so concurrent payments never lose an update.
type Order struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	OrderID     string          `gorm:"uniqueIndex;not null" json:"order_id"` // human-readable, CMD-YYYYMMDD-NNNN
	CustomerID  uint            `gorm:"not null;index" json:"customer_id"`
	Customer    Customer        `gorm:"foreignKey:CustomerID" json:"customer"`
	DepositDate time.Time       `gorm:"autoCreateTime" json:"deposit_date"`
	DueDate     time.Time       `gorm:"not null" json:"due_date"`
	PickupDate  *time.Time      `json:"pickup_date"` // stamped once, on the first transition to DELIVERED
	Status      string          `gorm:"not null;default:'PENDING'" json:"status"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	AmountPaid  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount_paid"`
	Notes       string          `gorm:"type:text" json:"notes"`
	UserID      *uint           `gorm:"index" json:"user_id"` // staff member who recorded the order, survives staff deletion
	User        *User           `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"user,omitempty"`
	Items       []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Payments    []Payment       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"payments,omitempty"`
	Balance     decimal.Decimal `gorm:"-" json:"balance"`
	IsPaid      bool            `gorm:"-" json:"is_paid"`
}

// ComputeDerived refreshes the Balance and IsPaid convenience fields.
// Overpayment is allowed: the balance goes negative rather than being
// capped, the excess is settled at the counter.
func (o *Order) ComputeDerived() {
	o.Balance = o.TotalAmount.Sub(o.AmountPaid)
	o.IsPaid = o.AmountPaid.GreaterThanOrEqual(o.TotalAmount)
}

// AfterFind populates the derived fields whenever an order is loaded.
func (o *Order) AfterFind(tx *gorm.DB) error {
	o.ComputeDerived()
	return nil
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem is a line of an order. unit_price is a snapshot of the
// service price taken when the item was created and is never recomputed
// from the live service price.
type OrderItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	OrderID     uint            `gorm:"not null;index" json:"order_id"`
	ServiceID   uint            `gorm:"not null;index" json:"service_id"`
	Service     Service         `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	Quantity    int             `gorm:"not null;default:1;check:quantity >= 1" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_price"`
	Description string          `gorm:"type:text" json:"description"` // color, garment state, etc.
}

// BeforeSave keeps total_price consistent with its inputs. Clients never
// supply total_price; it is always derived here.
func (i *OrderItem) BeforeSave(tx *gorm.DB) error {
	i.TotalPrice = i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
	return nil
}

// TableName specifies the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
