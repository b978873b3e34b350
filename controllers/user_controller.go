package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pressing-app/pressing-api/config"
	"github.com/pressing-app/pressing-api/middleware"
	"github.com/pressing-app/pressing-api/models"
	"github.com/pressing-app/pressing-api/services"
)

// CreateUser handles POST /api/v1/users - creates a staff profile from
// Auth0 userinfo on first sign-in. The Auth0 subject becomes the opaque
// actor id recorded on orders and payments.
func CreateUser(c *gin.Context) {
	auth0ID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not extract user ID from token")
		return
	}

	accessToken, err := middleware.GetAccessToken(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "MISSING_TOKEN", "Access token not found")
		return
	}

	// Fetch profile data from Auth0
	cfg := config.GetConfig()
	auth0Service := services.NewAuth0Service(cfg)
	userInfo, err := auth0Service.GetUserInfo(accessToken)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "AUTH0_ERROR", "Failed to fetch user information from Auth0")
		return
	}

	if userInfo.Email == "" {
		respondError(c, http.StatusBadRequest, "MISSING_EMAIL", "Email not provided by Auth0")
		return
	}
	if userInfo.Name == "" {
		respondError(c, http.StatusBadRequest, "MISSING_NAME", "Name not provided by Auth0")
		return
	}

	db := config.GetDB()

	// Idempotent: signing in again returns the existing profile
	var existing models.User
	if err := db.Where("auth0_id = ?", auth0ID).First(&existing).Error; err == nil {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    existing,
		})
		return
	}

	user := models.User{
		Auth0ID: auth0ID,
		Name:    userInfo.Name,
		Email:   userInfo.Email,
		Role:    "staff",
	}

	if err := db.Create(&user).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create user profile")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    user,
	})
}

// GetCurrentUser handles GET /api/v1/users/me
func GetCurrentUser(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}
