package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pressing-app/pressing-api/config"
	"github.com/pressing-app/pressing-api/controllers"
	"github.com/pressing-app/pressing-api/middleware"
	"github.com/pressing-app/pressing-api/models"
)

func main() {
	// Basic logging
	log.Println("Starting Pressing API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.CategoryServices{},
		&models.Service{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Initialize Gin router
	router := gin.Default()
	router.Use(cors.Default())

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Database status endpoint
		v1.GET("/database/status", databaseStatus)

		// Everything below requires a valid token; the subject claim is
		// the actor recorded on orders and payments
		authorized := v1.Group("")
		authorized.Use(middleware.EnsureValidToken(cfg))
		{
			// Staff profiles
			authorized.POST("/users", controllers.CreateUser)
			authorized.GET("/users/me", controllers.GetCurrentUser)

			// Customers
			authorized.POST("/customers", controllers.CreateCustomer)
			authorized.GET("/customers", controllers.ListCustomers)
			authorized.GET("/customers/:id", controllers.GetCustomer)
			authorized.PUT("/customers/:id", controllers.UpdateCustomer)
			authorized.DELETE("/customers/:id", controllers.DeleteCustomer)
			authorized.GET("/customers/:id/orders", controllers.GetCustomerOrders)
			authorized.GET("/customers/:id/statistics", controllers.GetCustomerStatistics)

			// Service catalog
			authorized.POST("/categories", controllers.CreateCategory)
			authorized.GET("/categories", controllers.ListCategories)
			authorized.GET("/categories/:id", controllers.GetCategory)
			authorized.PUT("/categories/:id", controllers.UpdateCategory)
			authorized.DELETE("/categories/:id", controllers.DeleteCategory)
			authorized.POST("/services", controllers.CreateService)
			authorized.GET("/services", controllers.ListServices)
			authorized.GET("/services/:id", controllers.GetService)
			authorized.PUT("/services/:id", controllers.UpdateService)
			authorized.DELETE("/services/:id", controllers.DeleteService)

			// Orders
			authorized.POST("/orders", controllers.CreateOrder)
			authorized.GET("/orders", controllers.ListOrders)
			authorized.GET("/orders/statistics", controllers.OrderStatistics)
			authorized.GET("/orders/:id", controllers.GetOrder)
			authorized.DELETE("/orders/:id", controllers.DeleteOrder)
			authorized.POST("/orders/:id/status", controllers.ChangeOrderStatus)
			authorized.POST("/orders/:id/payments", controllers.AddOrderPayment)

			// Payments
			authorized.GET("/payments", controllers.ListPayments)
			authorized.GET("/payments/:id", controllers.GetPayment)
		}
	}

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Pressing API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	// Get list of tables
	var tables []string
	if err := db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public'").Scan(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
