package services

import (
	"fmt"
	"time"

	"github.com/pressing-app/pressing-api/models"
	"gorm.io/gorm"
)

// Order identifiers look like CMD-20260828-0001: the creation date plus a
// per-day sequence. The sequence is a count of today's orders, which is
// not atomic with the insert; the unique index on order_id backs it up
// and CreateOrder retries on conflict, capped at maxOrderIDAttempts.
const (
	orderIDPrefix      = "CMD"
	orderIDDateFormat  = "20060102"
	maxOrderIDAttempts = 5
)

// nextOrderID produces the next candidate order id for the given day
// using the counting strategy.
func nextOrderID(db *gorm.DB, now time.Time) (string, error) {
	prefix := fmt.Sprintf("%s-%s-", orderIDPrefix, now.Format(orderIDDateFormat))

	var count int64
	if err := db.Model(&models.Order{}).
		Where("order_id LIKE ?", prefix+"%").
		Count(&count).Error; err != nil {
		return "", &StorageError{Op: "count orders for id generation", Err: err}
	}

	return fmt.Sprintf("%s%04d", prefix, count+1), nil
}
