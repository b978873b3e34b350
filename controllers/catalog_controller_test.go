package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pressing-app/pressing-api/config"
	"github.com/pressing-app/pressing-api/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCreateService(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	active := true
	category := &models.CategoryServices{Name: "Ironing", Active: &active}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}
	other := &models.CategoryServices{Name: "Repairs", Active: &active}
	if err := db.Create(other).Error; err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}

	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		expectedStatus int
		expectedError  string
	}{
		{
			name: "Successfully create service",
			requestBody: map[string]interface{}{
				"category_id": category.ID,
				"name":        "Trousers",
				"price":       "3.00",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Fail with duplicate name in same category",
			requestBody: map[string]interface{}{
				"category_id": category.ID,
				"name":        "Trousers",
				"price":       "4.00",
			},
			expectedStatus: http.StatusConflict,
			expectedError:  "DUPLICATE_SERVICE",
		},
		{
			name: "Same name in another category is allowed",
			requestBody: map[string]interface{}{
				"category_id": other.ID,
				"name":        "Trousers",
				"price":       "6.00",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Fail with negative price",
			requestBody: map[string]interface{}{
				"category_id": category.ID,
				"name":        "Curtains",
				"price":       "-2.00",
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name: "Fail with zero price",
			requestBody: map[string]interface{}{
				"category_id": category.ID,
				"name":        "Curtains",
				"price":       "0",
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name: "Fail with unknown category",
			requestBody: map[string]interface{}{
				"category_id": 9999,
				"name":        "Curtains",
				"price":       "2.00",
			},
			expectedStatus: http.StatusNotFound,
			expectedError:  "NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter()
			router.POST("/services", CreateService)

			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest("POST", "/services", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code, "Response: %s", w.Body.String())

			var response map[string]interface{}
			err := json.Unmarshal(w.Body.Bytes(), &response)
			assert.NoError(t, err)

			if tt.expectedError != "" {
				assert.Equal(t, false, response["success"])
				errObj := response["error"].(map[string]interface{})
				assert.Equal(t, tt.expectedError, errObj["code"])
			} else {
				assert.Equal(t, true, response["success"])
			}
		})
	}
}

// TestCreateServiceDefaultEstimate verifies the 24 hour turnaround
// default when the request omits estimate_time.
func TestCreateServiceDefaultEstimate(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	active := true
	category := &models.CategoryServices{Name: "Ironing", Active: &active}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}

	router := setupTestRouter()
	router.POST("/services", CreateService)

	body, _ := json.Marshal(map[string]interface{}{
		"category_id": category.ID,
		"name":        "Dress",
		"price":       "7.50",
		"active":      true,
	})
	req, _ := http.NewRequest("POST", "/services", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code, "Response: %s", w.Body.String())

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, float64(24), data["estimate_time"])

	price := decimal.RequireFromString(data["price"].(string))
	assert.True(t, price.Equal(decimal.RequireFromString("7.50")))
}

// TestUpdateServicePreservesOrderItemSnapshot verifies a price change
// never rewrites the unit price frozen on existing order items.
func TestUpdateServicePreservesOrderItemSnapshot(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	customer := seedCustomer(t, db)
	suit, _ := seedServices(t, db)

	order := &models.Order{
		OrderID:     "CMD-20260828-0001",
		CustomerID:  customer.ID,
		DueDate:     time.Now().Add(48 * time.Hour),
		Status:      models.StatusPending,
		TotalAmount: decimal.RequireFromString("10.00"),
		Items: []models.OrderItem{
			{ServiceID: suit.ID, Quantity: 1, UnitPrice: suit.Price},
		},
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("Failed to create order: %v", err)
	}

	router := setupTestRouter()
	router.PUT("/services/:id", UpdateService)

	body, _ := json.Marshal(map[string]interface{}{"price": "99.99"})
	req, _ := http.NewRequest("PUT", fmt.Sprintf("/services/%d", suit.ID), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, "Response: %s", w.Body.String())

	var item models.OrderItem
	if err := db.Where("order_id = ?", order.ID).First(&item).Error; err != nil {
		t.Fatalf("Failed to load order item: %v", err)
	}
	assert.True(t, item.UnitPrice.Equal(decimal.RequireFromString("10.00")),
		"Order item should keep the price snapshot, got %s", item.UnitPrice)
}

// TestDeleteCategoryCascades verifies deleting a category removes its
// services through the foreign key cascade.
func TestDeleteCategoryCascades(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	suit, shirt := seedServices(t, db)

	router := setupTestRouter()
	router.DELETE("/categories/:id", DeleteCategory)

	req, _ := http.NewRequest("DELETE", fmt.Sprintf("/categories/%d", suit.CategoryID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, "Response: %s", w.Body.String())

	var count int64
	db.Model(&models.Service{}).Where("id IN ?", []uint{suit.ID, shirt.ID}).Count(&count)
	assert.Equal(t, int64(0), count, "Services should be deleted with their category")
}

// TestListCategoriesServiceCount verifies the per-category active
// service counts attached by the listing.
func TestListCategoriesServiceCount(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	suit, _ := seedServices(t, db)

	inactive := false
	retired := &models.Service{
		CategoryID: suit.CategoryID,
		Name:       "Waistcoat",
		Price:      decimal.RequireFromString("4.00"),
		Active:     &inactive,
	}
	if err := db.Create(retired).Error; err != nil {
		t.Fatalf("Failed to create service: %v", err)
	}

	active := true
	empty := &models.CategoryServices{Name: "Repairs", Active: &active}
	if err := db.Create(empty).Error; err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}

	router := setupTestRouter()
	router.GET("/categories", ListCategories)

	req, _ := http.NewRequest("GET", "/categories", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	data := response["data"].([]interface{})
	assert.Len(t, data, 2)

	counts := map[string]float64{}
	for _, entry := range data {
		category := entry.(map[string]interface{})
		counts[category["name"].(string)] = category["service_count"].(float64)
	}
	assert.Equal(t, float64(2), counts["Dry cleaning"], "Inactive services are not counted")
	assert.Equal(t, float64(0), counts["Repairs"])
}
