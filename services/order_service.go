package services

import (
	"errors"
	"time"

	"github.com/pressing-app/pressing-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService implements the order lifecycle: aggregate creation with
// price snapshots, status transitions and statistics.
type OrderService struct {
	db *gorm.DB
}

// NewOrderService creates a new OrderService backed by the given database
func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// CreateOrderItemInput is one (service, quantity) pair of an order request
type CreateOrderItemInput struct {
	ServiceID   uint
	Quantity    int
	Description string
}

// CreateOrderInput is the input for CreateOrder. UserID is the staff
// member recording the order, nil when unknown.
type CreateOrderInput struct {
	CustomerID uint
	DueDate    time.Time
	Notes      string
	UserID     *uint
	Items      []CreateOrderItemInput
}

// CreateOrder builds and persists an order aggregate: it validates the
// input, snapshots each service's current price into a line item, sums
// the line totals into total_amount with exact decimal arithmetic and
// writes the header, its items and the total in a single transaction.
// The order id is assigned before the insert and never changes.
func (s *OrderService) CreateOrder(in CreateOrderInput) (*models.Order, error) {
	now := time.Now()

	// All validation happens before any mutation.
	if !in.DueDate.After(now) {
		return nil, &ValidationError{Field: "due_date", Message: "due date must be in the future"}
	}

	var customer models.Customer
	if err := s.db.First(&customer, in.CustomerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "customer", ID: in.CustomerID}
		}
		return nil, &StorageError{Op: "load customer", Err: err}
	}

	items := make([]models.OrderItem, 0, len(in.Items))
	total := decimal.Zero
	for _, it := range in.Items {
		var service models.Service
		if err := s.db.First(&service, it.ServiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &NotFoundError{Resource: "service", ID: it.ServiceID}
			}
			return nil, &StorageError{Op: "load service", Err: err}
		}

		if it.Quantity < 1 {
			return nil, &ValidationError{Field: "quantity", Message: "quantity must be at least 1"}
		}

		// Snapshot the live price; later price changes must not touch
		// this item.
		unitPrice := service.Price
		lineTotal := unitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))

		items = append(items, models.OrderItem{
			ServiceID:   it.ServiceID,
			Quantity:    it.Quantity,
			UnitPrice:   unitPrice,
			TotalPrice:  lineTotal,
			Description: it.Description,
		})
		total = total.Add(lineTotal)
	}

	// The count-based id is racy between count and insert; the unique
	// index catches the loser, which retries with a fresh count.
	var lastErr error
	for attempt := 0; attempt < maxOrderIDAttempts; attempt++ {
		orderID, err := nextOrderID(s.db, now)
		if err != nil {
			return nil, err
		}

		order := &models.Order{
			OrderID:     orderID,
			CustomerID:  in.CustomerID,
			DueDate:     in.DueDate,
			Status:      models.StatusPending,
			TotalAmount: total,
			AmountPaid:  decimal.Zero,
			Notes:       in.Notes,
			UserID:      in.UserID,
			Items:       items,
		}

		err = s.db.Transaction(func(tx *gorm.DB) error {
			return tx.Create(order).Error
		})
		if err == nil {
			if err := s.db.Preload("Customer").Preload("Items.Service").Preload("User").
				First(order, order.ID).Error; err != nil {
				return nil, &StorageError{Op: "reload created order", Err: err}
			}
			return order, nil
		}
		if !isUniqueViolation(err) {
			return nil, &StorageError{Op: "create order", Err: err}
		}
		lastErr = err
	}

	return nil, &ConflictError{Field: "order_id", Value: lastErr.Error()}
}

// ChangeStatus moves an order to newStatus. Any status may move to any
// other; only membership in the status set is checked. The first
// transition to DELIVERED stamps pickup_date; repeating it leaves the
// existing stamp untouched.
func (s *OrderService) ChangeStatus(orderID uint, newStatus string) (*models.Order, error) {
	if !models.IsValidStatus(newStatus) {
		return nil, &InvalidStatusError{Status: newStatus}
	}

	var order models.Order
	if err := s.db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "order", ID: orderID}
		}
		return nil, &StorageError{Op: "load order", Err: err}
	}

	updates := map[string]interface{}{"status": newStatus}
	if newStatus == models.StatusDelivered && order.PickupDate == nil {
		now := time.Now()
		updates["pickup_date"] = &now
		order.PickupDate = &now
	}

	if err := s.db.Model(&order).Updates(updates).Error; err != nil {
		return nil, &StorageError{Op: "update order status", Err: err}
	}

	order.Status = newStatus
	order.ComputeDerived()
	return &order, nil
}

// OrderStatistics is the global dashboard payload
type OrderStatistics struct {
	TotalOrders       int64            `json:"total_orders"`
	OrdersToday       int64            `json:"orders_today"`
	OrdersLast30Days  int64            `json:"orders_last_30_days"`
	OrdersByStatus    map[string]int64 `json:"orders_by_status"`
	RevenueLast30Days decimal.Decimal  `json:"revenue_last_30_days"`
	PendingAmount     decimal.Decimal  `json:"pending_amount"` // outstanding balance across all orders
}

// Statistics aggregates order counts and revenue for the dashboard.
func (s *OrderService) Statistics() (*OrderStatistics, error) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	last30Days := startOfDay.AddDate(0, 0, -30)

	stats := &OrderStatistics{OrdersByStatus: make(map[string]int64)}

	if err := s.db.Model(&models.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, &StorageError{Op: "count orders", Err: err}
	}
	if err := s.db.Model(&models.Order{}).
		Where("deposit_date >= ?", startOfDay).
		Count(&stats.OrdersToday).Error; err != nil {
		return nil, &StorageError{Op: "count today's orders", Err: err}
	}
	if err := s.db.Model(&models.Order{}).
		Where("deposit_date >= ?", last30Days).
		Count(&stats.OrdersLast30Days).Error; err != nil {
		return nil, &StorageError{Op: "count recent orders", Err: err}
	}

	for _, status := range models.OrderStatuses {
		var count int64
		if err := s.db.Model(&models.Order{}).
			Where("status = ?", status).
			Count(&count).Error; err != nil {
			return nil, &StorageError{Op: "count orders by status", Err: err}
		}
		stats.OrdersByStatus[status] = count
	}

	if err := s.db.Model(&models.Order{}).
		Where("deposit_date >= ?", last30Days).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&stats.RevenueLast30Days).Error; err != nil {
		return nil, &StorageError{Op: "sum recent revenue", Err: err}
	}
	if err := s.db.Model(&models.Order{}).
		Select("COALESCE(SUM(total_amount - amount_paid), 0)").
		Scan(&stats.PendingAmount).Error; err != nil {
		return nil, &StorageError{Op: "sum outstanding balance", Err: err}
	}

	return stats, nil
}

// CustomerStatistics is the per-customer summary payload
type CustomerStatistics struct {
	TotalOrders      int64           `json:"total_orders"`
	OrdersPending    int64           `json:"orders_pending"`
	OrdersDelivered  int64           `json:"orders_delivered"`
	TotalAmountSpent decimal.Decimal `json:"total_amount_spent"`
	AmountPending    decimal.Decimal `json:"amount_pending"`
}

// CustomerStatistics summarizes a single customer's order history.
func (s *OrderService) CustomerStatistics(customerID uint) (*CustomerStatistics, error) {
	var customer models.Customer
	if err := s.db.First(&customer, customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "customer", ID: customerID}
		}
		return nil, &StorageError{Op: "load customer", Err: err}
	}

	stats := &CustomerStatistics{}
	base := s.db.Model(&models.Order{}).Where("customer_id = ?", customerID)

	if err := base.Session(&gorm.Session{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, &StorageError{Op: "count customer orders", Err: err}
	}
	if err := base.Session(&gorm.Session{}).
		Where("status = ?", models.StatusPending).
		Count(&stats.OrdersPending).Error; err != nil {
		return nil, &StorageError{Op: "count pending orders", Err: err}
	}
	if err := base.Session(&gorm.Session{}).
		Where("status = ?", models.StatusDelivered).
		Count(&stats.OrdersDelivered).Error; err != nil {
		return nil, &StorageError{Op: "count delivered orders", Err: err}
	}
	if err := base.Session(&gorm.Session{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&stats.TotalAmountSpent).Error; err != nil {
		return nil, &StorageError{Op: "sum customer spend", Err: err}
	}
	if err := base.Session(&gorm.Session{}).
		Select("COALESCE(SUM(total_amount - amount_paid), 0)").
		Scan(&stats.AmountPending).Error; err != nil {
		return nil, &StorageError{Op: "sum customer balance", Err: err}
	}

	return stats, nil
}
