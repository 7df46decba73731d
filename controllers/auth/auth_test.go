package authControllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	authControllers "github.com/thebilalkhokhar/EatsOnline/controllers/auth"
	"github.com/thebilalkhokhar/EatsOnline/models"
)

func setupAuthRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	r := gin.New()
	r.POST("/api/auth/signup", authControllers.Signup(db))
	r.POST("/api/auth/login", authControllers.Login(db))
	return r, db
}

func authJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	json.NewEncoder(&buf).Encode(body)
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSignup(t *testing.T) {
	r, db := setupAuthRouter(t)

	valid := gin.H{
		"name":      "Bilal Khokhar",
		"email":     "Bilal@Example.com",
		"password":  "secret123",
		"phone":     "03134432915",
		"addresses": []string{"House 12, DHA Phase 5, Lahore"},
	}

	t.Run("creates a customer and returns a token", func(t *testing.T) {
		w := authJSON(r, "/api/auth/signup", valid)
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "token")

		var user models.User
		require.NoError(t, db.Where("email = ?", "bilal@example.com").First(&user).Error)
		assert.Equal(t, models.RoleCustomer, user.Role)
		// local numbers are stored in +92 format
		assert.Equal(t, "+923134432915", user.Phone)
		// never stored in plain text
		assert.NotEqual(t, "secret123", user.Password)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		w := authJSON(r, "/api/auth/signup", valid)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Email already exists")
	})

	t.Run("invalid phone rejected", func(t *testing.T) {
		bad := gin.H{"name": "X", "email": "x@example.com", "password": "secret123", "phone": "12345"}
		w := authJSON(r, "/api/auth/signup", bad)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("short password rejected", func(t *testing.T) {
		bad := gin.H{"name": "X", "email": "y@example.com", "password": "abc", "phone": "03001234567"}
		w := authJSON(r, "/api/auth/signup", bad)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("admin role honored", func(t *testing.T) {
		admin := gin.H{
			"name": "Owner", "email": "owner@example.com",
			"password": "secret123", "phone": "03214432915", "role": "admin",
		}
		w := authJSON(r, "/api/auth/signup", admin)
		require.Equal(t, http.StatusCreated, w.Code)

		var user models.User
		require.NoError(t, db.Where("email = ?", "owner@example.com").First(&user).Error)
		assert.Equal(t, models.RoleAdmin, user.Role)
	})
}

func TestLogin(t *testing.T) {
	r, _ := setupAuthRouter(t)

	signup := gin.H{
		"name": "Bilal Khokhar", "email": "bilal@example.com",
		"password": "secret123", "phone": "03134432915",
	}
	require.Equal(t, http.StatusCreated, authJSON(r, "/api/auth/signup", signup).Code)

	t.Run("valid credentials", func(t *testing.T) {
		w := authJSON(r, "/api/auth/login", gin.H{"email": "bilal@example.com", "password": "secret123"})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "token")
	})

	t.Run("email lookup is case-insensitive", func(t *testing.T) {
		w := authJSON(r, "/api/auth/login", gin.H{"email": "BILAL@example.com", "password": "secret123"})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := authJSON(r, "/api/auth/login", gin.H{"email": "bilal@example.com", "password": "wrong"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown email", func(t *testing.T) {
		w := authJSON(r, "/api/auth/login", gin.H{"email": "ghost@example.com", "password": "secret123"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
