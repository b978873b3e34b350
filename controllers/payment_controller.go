package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pressing-app/pressing-api/config"
	"github.com/pressing-app/pressing-api/models"
)

// ListPayments handles GET /api/v1/payments with optional order and
// payment method filters
func ListPayments(c *gin.Context) {
	db := config.GetDB()
	query := db.Preload("User").Order("payment_date DESC")

	if order := c.Query("order"); order != "" {
		query = query.Where("order_id = ?", order)
	}
	if method := c.Query("payment_method"); method != "" {
		query = query.Where("payment_method = ?", method)
	}

	var payments []models.Payment
	if err := query.Find(&payments).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to list payments")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    payments,
	})
}

// GetPayment handles GET /api/v1/payments/:id
func GetPayment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Payment id must be a number")
		return
	}

	db := config.GetDB()
	var payment models.Payment
	if err := db.Preload("User").First(&payment, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Payment not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    payment,
	})
}
