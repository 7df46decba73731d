package authControllers

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/thebilalkhokhar/EatsOnline/middleware"
	"github.com/thebilalkhokhar/EatsOnline/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	emailPattern         = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	internationalPhoneRe = regexp.MustCompile(`^\+923[0-4][0-9]{8}$`)
	localPhoneRe         = regexp.MustCompile(`^03[0-4][0-9]{8}$`)
)

// normalizePhone converts a local number (03XXXXXXXXX) to +92 format and
// validates the result.
func normalizePhone(phone string) (string, bool) {
	phone = strings.TrimSpace(phone)
	if localPhoneRe.MatchString(phone) {
		phone = "+92" + phone[1:]
	}
	return phone, internationalPhoneRe.MatchString(phone)
}

type SignupRequest struct {
	Name      string   `json:"name" binding:"required"`
	Email     string   `json:"email" binding:"required"`
	Password  string   `json:"password" binding:"required"`
	Phone     string   `json:"phone" binding:"required"`
	Addresses []string `json:"addresses"`
	Role      string   `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Signup(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "All fields (name, email, password, phone) are required"})
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		if !emailPattern.MatchString(email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format"})
			return
		}
		if len(req.Password) < 6 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 6 characters"})
			return
		}
		phone, ok := normalizePhone(req.Phone)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a valid Pakistani phone number (e.g., 03134432915)"})
			return
		}

		var existing models.User
		if err := db.Where("email = ? OR phone = ?", email, phone).First(&existing).Error; err == nil {
			msg := "Phone number already exists"
			if existing.Email == email {
				msg = "Email already exists"
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": msg})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}

		role := models.RoleCustomer
		if req.Role == string(models.RoleAdmin) {
			role = models.RoleAdmin
		}

		var addresses []string
		for _, a := range req.Addresses {
			if strings.TrimSpace(a) != "" {
				addresses = append(addresses, strings.TrimSpace(a))
			}
		}

		user := models.User{
			Name:      req.Name,
			Email:     email,
			Password:  string(hash),
			Phone:     phone,
			Addresses: addresses,
			Role:      role,
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}

		token, err := middleware.GenerateToken(&user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
	}
}

func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
			return
		}

		var user models.User
		if err := db.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}

		token, err := middleware.GenerateToken(&user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
	}
}
