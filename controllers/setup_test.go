package controllers

import (
	"testing"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
	"github.com/pressing-app/pressing-api/middleware"
	"github.com/pressing-app/pressing-api/models"
	"github.com/pressing-app/pressing-api/tests/testutil"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens an isolated in-memory database for controller tests
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	testutil.RequireTestEnvironment(t)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.CategoryServices{},
		&models.Service{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	return router
}

// mockAuthMiddleware seeds the gin context the same way the real JWT
// middleware does, without a live Auth0 tenant.
func mockAuthMiddleware(auth0ID, accessToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", auth0ID)
		c.Set("access_token", accessToken)

		mockClaims := &validator.ValidatedClaims{
			CustomClaims: &middleware.CustomClaims{Role: "staff"},
		}
		c.Set("validated_claims", mockClaims)

		c.Next()
	}
}

func seedStaffUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := &models.User{
		Auth0ID: "auth0|staff123",
		Name:    "Staff User",
		Email:   "staff@example.com",
		Role:    "staff",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create staff user: %v", err)
	}
	return user
}

func seedCustomer(t *testing.T, db *gorm.DB) *models.Customer {
	t.Helper()

	customer := &models.Customer{
		FirstName: "Awa",
		LastName:  "Diop",
		Phone:     "+221771234567",
	}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("Failed to create customer: %v", err)
	}
	return customer
}

// seedServices creates a category with two services priced 10.00 and 5.50
func seedServices(t *testing.T, db *gorm.DB) (*models.Service, *models.Service) {
	t.Helper()

	active := true
	category := &models.CategoryServices{Name: "Dry cleaning", Active: &active}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}

	s1 := &models.Service{
		CategoryID: category.ID,
		Name:       "Suit",
		Price:      decimal.RequireFromString("10.00"),
		Active:     &active,
	}
	s2 := &models.Service{
		CategoryID: category.ID,
		Name:       "Shirt",
		Price:      decimal.RequireFromString("5.50"),
		Active:     &active,
	}
	if err := db.Create(s1).Error; err != nil {
		t.Fatalf("Failed to create service: %v", err)
	}
	if err := db.Create(s2).Error; err != nil {
		t.Fatalf("Failed to create service: %v", err)
	}
	return s1, s2
}
