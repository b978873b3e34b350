package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment methods accepted at the counter.
const (
	MethodCash        = "CASH"
	MethodCard        = "CARD"
	MethodMobileMoney = "MOBILE_MONEY"
	MethodCheck       = "CHECK"
)

// PaymentMethods lists every accepted payment method.
var PaymentMethods = []string{
	MethodCash,
	MethodCard,
	MethodMobileMoney,
	MethodCheck,
}

// IsValidPaymentMethod reports whether m is an accepted payment method.
func IsValidPaymentMethod(m string) bool {
	for _, method := range PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}

// Payment is a single payment applied against an order. Payments are
// immutable once created; a correction is a new compensating payment so
// that amount_paid always equals the sum of the payment rows.
type Payment struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	OrderID       uint            `gorm:"not null;index" json:"order_id"`
	Order         Order           `gorm:"foreignKey:OrderID;references:ID;-:migration" json:"-"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	PaymentMethod string          `gorm:"not null" json:"payment_method"`
	PaymentDate   time.Time       `gorm:"autoCreateTime" json:"payment_date"`
	Reference     string          `gorm:"uniqueIndex;not null" json:"reference"` // user-supplied or generated PAY-<n>
	Notes         string          `gorm:"type:text" json:"notes"`
	UserID        *uint           `gorm:"index" json:"user_id"` // staff member who recorded the payment
	User          *User           `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"user,omitempty"`
}

// TableName specifies the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
