package authControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thebilalkhokhar/EatsOnline/middleware"
	"github.com/thebilalkhokhar/EatsOnline/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UpdateProfileRequest struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	Addresses       []string `json:"addresses"`
	CurrentPassword string   `json:"current_password"`
	NewPassword     string   `json:"new_password"`
}

// GET /api/users/profile
func GetProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := db.First(&user, middleware.CurrentUserID(c)).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// PUT /api/users/profile
func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var user models.User
		if err := db.First(&user, middleware.CurrentUserID(c)).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		if req.Name != "" {
			user.Name = req.Name
		}
		if req.Email != "" {
			if !emailPattern.MatchString(req.Email) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format"})
				return
			}
			user.Email = req.Email
		}
		if req.Phone != "" {
			phone, ok := normalizePhone(req.Phone)
			if !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid phone number format"})
				return
			}
			user.Phone = phone
		}
		if req.Addresses != nil {
			user.Addresses = req.Addresses
		}

		if req.NewPassword != "" {
			if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Current password is incorrect"})
				return
			}
			if len(req.NewPassword) < 6 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 6 characters"})
				return
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
				return
			}
			user.Password = string(hash)
		}

		if err := db.Save(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}
