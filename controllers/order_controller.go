package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pressing-app/pressing-api/config"
	"github.com/pressing-app/pressing-api/models"
	"github.com/pressing-app/pressing-api/services"
	"github.com/shopspring/decimal"
)

// CreateOrderItemRequest is one line of an order creation request
type CreateOrderItemRequest struct {
	ServiceID   uint   `json:"service_id" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required"`
	Description string `json:"description"`
}

// CreateOrderRequest represents the request body for creating an order
type CreateOrderRequest struct {
	CustomerID uint                     `json:"customer_id" binding:"required"`
	DueDate    time.Time                `json:"due_date" binding:"required"`
	Notes      string                   `json:"notes"`
	Items      []CreateOrderItemRequest `json:"items" binding:"required"`
}

// ChangeStatusRequest represents the request body for a status change
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AddPaymentRequest represents the request body for adding a payment
type AddPaymentRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethod string          `json:"payment_method" binding:"required"`
	Reference     string          `json:"reference"`
	Notes         string          `json:"notes"`
}

// CreateOrder handles POST /api/v1/orders
func CreateOrder(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data: "+err.Error())
		return
	}

	items := make([]services.CreateOrderItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, services.CreateOrderItemInput{
			ServiceID:   it.ServiceID,
			Quantity:    it.Quantity,
			Description: it.Description,
		})
	}

	svc := services.NewOrderService(config.GetDB())
	order, err := svc.CreateOrder(services.CreateOrderInput{
		CustomerID: req.CustomerID,
		DueDate:    req.DueDate,
		Notes:      req.Notes,
		UserID:     &user.ID,
		Items:      items,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// ListOrders handles GET /api/v1/orders with optional status, customer
// and deposit date range filters
func ListOrders(c *gin.Context) {
	db := config.GetDB()
	query := db.Preload("Customer").Preload("Items").Order("deposit_date DESC")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if customer := c.Query("customer"); customer != "" {
		query = query.Where("customer_id = ?", customer)
	}
	if startDate := c.Query("start_date"); startDate != "" {
		query = query.Where("deposit_date >= ?", startDate)
	}
	if endDate := c.Query("end_date"); endDate != "" {
		query = query.Where("deposit_date <= ?", endDate)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to list orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// GetOrder handles GET /api/v1/orders/:id
func GetOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Order id must be a number")
		return
	}

	db := config.GetDB()
	var order models.Order
	if err := db.Preload("Customer").Preload("Items.Service").Preload("Payments").Preload("User").
		First(&order, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Order not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// ChangeOrderStatus handles POST /api/v1/orders/:id/status
func ChangeOrderStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Order id must be a number")
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data: "+err.Error())
		return
	}

	svc := services.NewOrderService(config.GetDB())
	order, err := svc.ChangeStatus(uint(id), req.Status)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// AddOrderPayment handles POST /api/v1/orders/:id/payments
func AddOrderPayment(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Order id must be a number")
		return
	}

	var req AddPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data: "+err.Error())
		return
	}

	svc := services.NewPaymentService(config.GetDB())
	payment, err := svc.AddPayment(uint(id), services.AddPaymentInput{
		Amount:    req.Amount,
		Method:    req.PaymentMethod,
		Reference: req.Reference,
		Notes:     req.Notes,
		UserID:    &user.ID,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    payment,
	})
}

// OrderStatistics handles GET /api/v1/orders/statistics
func OrderStatistics(c *gin.Context) {
	svc := services.NewOrderService(config.GetDB())
	stats, err := svc.Statistics()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    stats,
	})
}

// DeleteOrder handles DELETE /api/v1/orders/:id - removes an order and,
// through the cascade, its items and payments
func DeleteOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Order id must be a number")
		return
	}

	db := config.GetDB()
	var order models.Order
	if err := db.First(&order, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Order not found")
		return
	}

	if err := db.Delete(&order).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order deleted",
	})
}
