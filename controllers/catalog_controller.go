package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pressing-app/pressing-api/config"
	"github.com/pressing-app/pressing-api/models"
	"github.com/shopspring/decimal"
)

// CreateCategoryRequest represents the request body for creating a category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Active      *bool  `json:"active"`
}

// CreateServiceRequest represents the request body for creating a service
type CreateServiceRequest struct {
	CategoryID   uint            `json:"category_id" binding:"required"`
	Name         string          `json:"name" binding:"required"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price" binding:"required"`
	EstimateTime int             `json:"estimate_time"`
	Active       *bool           `json:"active"`
}

// UpdateCategoryRequest represents the request body for updating a category
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
}

// UpdateServiceRequest represents the request body for updating a service
type UpdateServiceRequest struct {
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	Price        *decimal.Decimal `json:"price"`
	EstimateTime *int             `json:"estimate_time"`
	Active       *bool            `json:"active"`
}

// CreateCategory handles POST /api/v1/categories
func CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data: "+err.Error())
		return
	}

	category := models.CategoryServices{
		Name:        req.Name,
		Description: req.Description,
		Active:      req.Active,
	}

	db := config.GetDB()
	if err := db.Create(&category).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create category")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    category,
	})
}

// ListCategories handles GET /api/v1/categories with optional active filter
func ListCategories(c *gin.Context) {
	db := config.GetDB()
	query := db.Order("name")

	if active := c.Query("active"); active != "" {
		query = query.Where("active = ?", active == "true")
	}

	var categories []models.CategoryServices
	if err := query.Find(&categories).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to list categories")
		return
	}

	// Attach the active service count per category
	data := make([]gin.H, 0, len(categories))
	for _, category := range categories {
		var count int64
		if err := db.Model(&models.Service{}).
			Where("category_id = ? AND active = ?", category.ID, true).
			Count(&count).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to count services")
			return
		}
		data = append(data, gin.H{
			"id":            category.ID,
			"name":          category.Name,
			"description":   category.Description,
			"active":        category.Active,
			"service_count": count,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// GetCategory handles GET /api/v1/categories/:id
func GetCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Category id must be a number")
		return
	}

	db := config.GetDB()
	var category models.CategoryServices
	if err := db.Preload("Services").First(&category, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Category not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    category,
	})
}

// UpdateCategory handles PUT /api/v1/categories/:id
func UpdateCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Category id must be a number")
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data: "+err.Error())
		return
	}

	db := config.GetDB()
	var category models.CategoryServices
	if err := db.First(&category, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Category not found")
		return
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.Active != nil {
		category.Active = req.Active
	}

	if err := db.Save(&category).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update category")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    category,
	})
}

// DeleteCategory handles DELETE /api/v1/categories/:id. Deletion cascades
// to the category's services.
func DeleteCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Category id must be a number")
		return
	}

	db := config.GetDB()
	var category models.CategoryServices
	if err := db.First(&category, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Category not found")
		return
	}

	if err := db.Delete(&category).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete category")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Category and its services deleted",
	})
}

// CreateService handles POST /api/v1/services
func CreateService(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data: "+err.Error())
		return
	}

	if !req.Price.IsPositive() {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Price must be greater than 0")
		return
	}

	db := config.GetDB()
	var category models.CategoryServices
	if err := db.First(&category, req.CategoryID).Error; err != nil {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Category not found")
		return
	}

	estimate := req.EstimateTime
	if estimate == 0 {
		estimate = 24
	}

	service := models.Service{
		CategoryID:   req.CategoryID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		EstimateTime: estimate,
		Active:       req.Active,
	}

	if err := db.Create(&service).Error; err != nil {
		respondError(c, http.StatusConflict, "DUPLICATE_SERVICE", "A service with this name already exists in the category")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    service,
	})
}

// ListServices handles GET /api/v1/services with optional active and
// category filters
func ListServices(c *gin.Context) {
	db := config.GetDB()
	query := db.Preload("Category").Order("category_id, name")

	if active := c.Query("active"); active != "" {
		query = query.Where("active = ?", active == "true")
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category_id = ?", category)
	}

	var servicesList []models.Service
	if err := query.Find(&servicesList).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to list services")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    servicesList,
	})
}

// GetService handles GET /api/v1/services/:id
func GetService(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Service id must be a number")
		return
	}

	db := config.GetDB()
	var service models.Service
	if err := db.Preload("Category").First(&service, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Service not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    service,
	})
}

// UpdateService handles PUT /api/v1/services/:id. Changing the price here
// never rewrites existing order items; they keep their snapshot.
func UpdateService(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Service id must be a number")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data: "+err.Error())
		return
	}

	db := config.GetDB()
	var service models.Service
	if err := db.First(&service, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Service not found")
		return
	}

	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.Price != nil {
		if !req.Price.IsPositive() {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Price must be greater than 0")
			return
		}
		service.Price = *req.Price
	}
	if req.EstimateTime != nil {
		service.EstimateTime = *req.EstimateTime
	}
	if req.Active != nil {
		service.Active = req.Active
	}

	if err := db.Save(&service).Error; err != nil {
		respondError(c, http.StatusConflict, "DUPLICATE_SERVICE", "A service with this name already exists in the category")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    service,
	})
}

// DeleteService handles DELETE /api/v1/services/:id
func DeleteService(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Service id must be a number")
		return
	}

	db := config.GetDB()
	var service models.Service
	if err := db.First(&service, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Service not found")
		return
	}

	if err := db.Delete(&service).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete service")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Service deleted",
	})
}
