package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pressing-app/pressing-api/config"
	"github.com/pressing-app/pressing-api/middleware"
	"github.com/pressing-app/pressing-api/models"
	"github.com/pressing-app/pressing-api/services"
)

// respondError writes the standard error envelope
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// handleServiceError maps a service-layer error to an HTTP response.
// Every branch carries the offending field or id in the message.
func handleServiceError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	var notFoundErr *services.NotFoundError
	var statusErr *services.InvalidStatusError
	var conflictErr *services.ConflictError

	switch {
	case errors.As(err, &validationErr):
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", validationErr.Error())
	case errors.As(err, &notFoundErr):
		respondError(c, http.StatusNotFound, "NOT_FOUND", notFoundErr.Error())
	case errors.As(err, &statusErr):
		respondError(c, http.StatusBadRequest, "INVALID_STATUS", statusErr.Error())
	case errors.As(err, &conflictErr):
		respondError(c, http.StatusConflict, "CONFLICT", conflictErr.Error())
	default:
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Unexpected storage failure")
	}
}

// currentUser resolves the authenticated actor to its staff profile.
// Responds with the appropriate error and returns nil when it cannot.
func currentUser(c *gin.Context) *models.User {
	auth0ID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not extract user information")
		return nil
	}

	db := config.GetDB()
	var user models.User
	if err := db.Where("auth0_id = ?", auth0ID).First(&user).Error; err != nil {
		respondError(c, http.StatusNotFound, "USER_NOT_FOUND", "Staff profile not found. Please create a profile first.")
		return nil
	}

	return &user
}
