package services

import (
	"testing"

	"github.com/pressing-app/pressing-api/models"
	"github.com/pressing-app/pressing-api/tests/testutil"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens an isolated in-memory database. The pool is capped at
// one connection so the :memory: database is stable and concurrent
// callers serialize at the pool, the same way a row lock would.
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

func createTestCustomer(t *testing.T, db *gorm.DB) *models.Customer {
	t.Helper()

	customer := &models.Customer{
		FirstName: "Awa",
		LastName:  "Diop",
		Phone:     "+221771234567",
	}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("Failed to create test customer: %v", err)
	}
	return customer
}

// createTestServices seeds a category with two services: S1 at 10.00 and
// S2 at 5.50.
func createTestServices(t *testing.T, db *gorm.DB) (*models.Service, *models.Service) {
	t.Helper()

	active := true
	category := &models.CategoryServices{Name: "Dry cleaning", Active: &active}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("Failed to create test category: %v", err)
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
		t.Fatalf("Failed to create test service: %v", err)
	}
	if err := db.Create(s2).Error; err != nil {
		t.Fatalf("Failed to create test service: %v", err)
	}
	return s1, s2
}

func createTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := &models.User{
		Auth0ID: "auth0|staff123",
		Name:    "Staff User",
		Email:   "staff@example.com",
		Role:    "staff",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}
