package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pressing-app/pressing-api/config"
	"github.com/pressing-app/pressing-api/models"
	"github.com/pressing-app/pressing-api/services"
	"github.com/pressing-app/pressing-api/utils"
)

// CreateCustomerRequest represents the request body for creating a customer
type CreateCustomerRequest struct {
	FirstName string  `json:"first_name" binding:"required"`
	LastName  string  `json:"last_name" binding:"required"`
	Phone     string  `json:"phone" binding:"required"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Address   string  `json:"address"`
	Active    *bool   `json:"active"`
}

// UpdateCustomerRequest represents the request body for updating a customer
type UpdateCustomerRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Address   *string `json:"address"`
	Active    *bool   `json:"active"`
}

// CreateCustomer handles POST /api/v1/customers
func CreateCustomer(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data: "+err.Error())
		return
	}

	if !utils.IsValidPhone(req.Phone) {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Phone number must be entered in the format: +999999999")
		return
	}

	customer := models.Customer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     req.Email,
		Address:   req.Address,
		Active:    req.Active,
	}

	db := config.GetDB()
	if err := db.Create(&customer).Error; err != nil {
		respondError(c, http.StatusConflict, "DUPLICATE_PHONE", "A customer with this phone number already exists")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    customer,
	})
}

// ListCustomers handles GET /api/v1/customers with optional active flag
// and search filters
func ListCustomers(c *gin.Context) {
	db := config.GetDB()
	query := db.Order("registered_at DESC")

	if active := c.Query("active"); active != "" {
		query = query.Where("active = ?", active == "true")
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"first_name LIKE ? OR last_name LIKE ? OR email LIKE ? OR phone LIKE ?",
			like, like, like, like,
		)
	}

	var customers []models.Customer
	if err := query.Find(&customers).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to list customers")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    customers,
	})
}

// GetCustomer handles GET /api/v1/customers/:id
func GetCustomer(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Customer id must be a number")
		return
	}

	db := config.GetDB()
	var customer models.Customer
	if err := db.First(&customer, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Customer not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    customer,
	})
}

// UpdateCustomer handles PUT /api/v1/customers/:id
func UpdateCustomer(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Customer id must be a number")
		return
	}

	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data: "+err.Error())
		return
	}

	db := config.GetDB()
	var customer models.Customer
	if err := db.First(&customer, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Customer not found")
		return
	}

	if req.FirstName != nil {
		customer.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		customer.LastName = *req.LastName
	}
	if req.Phone != nil {
		if !utils.IsValidPhone(*req.Phone) {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Phone number must be entered in the format: +999999999")
			return
		}
		customer.Phone = *req.Phone
	}
	if req.Email != nil {
		customer.Email = req.Email
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	if req.Active != nil {
		customer.Active = req.Active
	}

	// RegisteredAt is immutable; Save never touches autoCreateTime fields.
	if err := db.Save(&customer).Error; err != nil {
		respondError(c, http.StatusConflict, "DUPLICATE_PHONE", "A customer with this phone number already exists")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    customer,
	})
}

// DeleteCustomer handles DELETE /api/v1/customers/:id. Deletion cascades
// to the customer's orders, their items and payments - an explicit
// destructive choice.
func DeleteCustomer(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Customer id must be a number")
		return
	}

	db := config.GetDB()
	var customer models.Customer
	if err := db.First(&customer, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Customer not found")
		return
	}

	if err := db.Delete(&customer).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete customer")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Customer and their orders deleted",
	})
}

// GetCustomerOrders handles GET /api/v1/customers/:id/orders
func GetCustomerOrders(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Customer id must be a number")
		return
	}

	db := config.GetDB()
	var customer models.Customer
	if err := db.First(&customer, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Customer not found")
		return
	}

	var orders []models.Order
	if err := db.Preload("Items").Where("customer_id = ?", customer.ID).
		Order("deposit_date DESC").Find(&orders).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to list orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// GetCustomerStatistics handles GET /api/v1/customers/:id/statistics
func GetCustomerStatistics(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Customer id must be a number")
		return
	}

	svc := services.NewOrderService(config.GetDB())
	stats, err := svc.CustomerStatistics(uint(id))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    stats,
	})
}
