package services

import (
	"errors"
	"fmt"

	"github.com/pressing-app/pressing-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// A generated payment reference is PAY-<n+1> over the highest existing
// payment id. Like the order id counter this is racy, so the unique index
// on reference backs it up with the same bounded retry.
const maxReferenceAttempts = 5

// PaymentService records payments and keeps each order's amount_paid in
// step with the sum of its payments.
type PaymentService struct {
	db *gorm.DB
}

// NewPaymentService creates a new PaymentService backed by the given database
func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{db: db}
}

// AddPaymentInput is the input for AddPayment. Reference is optional; a
// PAY-<n> reference is generated when it is empty. UserID is the staff
// member recording the payment.
type AddPaymentInput struct {
	Amount    decimal.Decimal
	Method    string
	Reference string
	Notes     string
	UserID    *uint
}

// AddPayment creates a payment against the order and increments the
// order's amount_paid. The increment is evaluated at the storage layer
// (amount_paid = amount_paid + ?) inside the same transaction as the
// payment insert, so two concurrent payments are both reflected and a
// failed insert never leaves the order incremented. Overpayment is not
// rejected; the order's balance simply goes negative.
func (s *PaymentService) AddPayment(orderID uint, in AddPaymentInput) (*models.Payment, error) {
	if !in.Amount.IsPositive() {
		return nil, &ValidationError{Field: "amount", Message: "amount must be greater than 0"}
	}
	if !models.IsValidPaymentMethod(in.Method) {
		return nil, &ValidationError{Field: "payment_method", Message: fmt.Sprintf("unknown payment method %q", in.Method)}
	}

	var order models.Order
	if err := s.db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "order", ID: orderID}
		}
		return nil, &StorageError{Op: "load order", Err: err}
	}

	generated := in.Reference == ""
	var lastRef string
	for attempt := 0; attempt < maxReferenceAttempts; attempt++ {
		reference := in.Reference
		if generated {
			ref, err := s.nextReference()
			if err != nil {
				return nil, err
			}
			reference = ref
		}
		lastRef = reference

		payment := &models.Payment{
			OrderID:       order.ID,
			Amount:        in.Amount,
			PaymentMethod: in.Method,
			Reference:     reference,
			Notes:         in.Notes,
			UserID:        in.UserID,
		}

		err := s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(payment).Error; err != nil {
				return err
			}
			res := tx.Model(&models.Order{}).
				Where("id = ?", order.ID).
				UpdateColumn("amount_paid", gorm.Expr("amount_paid + ?", in.Amount))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected != 1 {
				return fmt.Errorf("order %d disappeared during payment", order.ID)
			}
			return nil
		})
		if err == nil {
			return payment, nil
		}
		if !isUniqueViolation(err) {
			return nil, &StorageError{Op: "record payment", Err: err}
		}
		if !generated {
			// Caller picked a reference that already exists; retrying
			// with the same value cannot succeed.
			return nil, &ConflictError{Field: "reference", Value: reference}
		}
	}

	return nil, &ConflictError{Field: "reference", Value: lastRef}
}

// nextReference produces the next candidate generated payment reference.
func (s *PaymentService) nextReference() (string, error) {
	var maxID int64
	if err := s.db.Model(&models.Payment{}).
		Select("COALESCE(MAX(id), 0)").
		Scan(&maxID).Error; err != nil {
		return "", &StorageError{Op: "read max payment id", Err: err}
	}
	return fmt.Sprintf("PAY-%d", maxID+1), nil
}
