package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/trimtime/trimtime-api/internal/cache"
	"github.com/trimtime/trimtime-api/internal/config"
	"github.com/trimtime/trimtime-api/internal/middleware"
	"github.com/trimtime/trimtime-api/internal/models"
	"github.com/trimtime/trimtime-api/internal/validators"
)

const tokenTTL = 24 * time.Hour

type AuthHandler struct {
	db       *gorm.DB
	config   *config.Config
	sessions *cache.Sessions
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, sessions *cache.Sessions) *AuthHandler {
	return &AuthHandler{db: db, config: cfg, sessions: sessions}
}

// --------- Requests ---------

type RegisterCustomerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type RegisterBarberRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`

	ShopName     string   `json:"shop_name" binding:"required"`
	ShopCategory string   `json:"shop_category"`
	ShopArea     string   `json:"shop_area"`
	ShopAddress  string   `json:"shop_address"`
	LocationURL  string   `json:"location_url"`
	Services     []string `json:"services"`
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) RegisterCustomer(c *gin.Context) {
	var req RegisterCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	user, ok := h.createUser(c, req.Name, req.Email, req.Password, req.Phone, "customer")
	if !ok {
		return
	}

	token, err := h.generateToken(user, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":  userJSON(user),
		"token": token,
	})
}

func (h *AuthHandler) RegisterBarber(c *gin.Context) {
	var req RegisterBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	user, ok := h.createUser(c, req.Name, req.Email, req.Password, req.Phone, "barber")
	if !ok {
		return
	}

	services, _ := json.Marshal(req.Services)

	// Shops start unverified and stay out of public listings until an
	// operator flips the flag.
	shop := models.Shop{
		OwnerID:     user.ID,
		Name:        req.ShopName,
		Category:    strings.ToLower(strings.TrimSpace(req.ShopCategory)),
		Area:        req.ShopArea,
		Address:     req.ShopAddress,
		LocationURL: req.LocationURL,
		Services:    datatypes.JSON(services),
	}

	if err := h.db.Create(&shop).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_shop"})
		return
	}

	token, err := h.generateToken(user, &shop.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":  userJSON(user),
		"shop":  shop,
		"token": token,
	})
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	var shopID *uint
	var shop *models.Shop
	if user.Role == "barber" {
		var s models.Shop
		if err := h.db.Where("owner_id = ?", user.ID).First(&s).Error; err == nil {
			shop = &s
			shopID = &s.ID
		}
	}

	token, err := h.generateToken(&user, shopID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	resp := gin.H{
		"user":  userJSON(&user),
		"token": token,
	}
	if shop != nil {
		resp["shop"] = shop
	}

	c.JSON(http.StatusOK, resp)
}

// SignOut denylists the presented token until its natural expiry. JWTs are
// otherwise stateless, so this is the only server-side revocation we do.
func (h *AuthHandler) SignOut(c *gin.Context) {
	tokenString := c.GetString(middleware.ContextToken)

	ttl := tokenTTL
	if token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{}); err == nil {
		if exp, err := token.Claims.GetExpirationTime(); err == nil && exp != nil {
			ttl = time.Until(exp.Time)
		}
	}

	if err := h.sessions.Revoke(c.Request.Context(), tokenString, ttl); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_sign_out"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "signed_out"})
}

func (h *AuthHandler) CurrentUser(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user_not_found"})
		return
	}

	resp := gin.H{"user": userJSON(&user)}

	if user.Role == "barber" {
		var shop models.Shop
		if err := h.db.Where("owner_id = ?", user.ID).First(&shop).Error; err == nil {
			resp["shop"] = shop
		}
	}

	c.JSON(http.StatusOK, resp)
}

// --------- Helpers ---------

func (h *AuthHandler) createUser(
	c *gin.Context,
	name, email, password, phone, role string,
) (*models.User, bool) {

	email = strings.ToLower(strings.TrimSpace(email))

	if !validators.IsEmailDomainValid(email) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_email_domain",
			"message": "The email domain does not appear to be valid.",
		})
		return nil, false
	}

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email_already_registered"})
		return nil, false
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_hash_password"})
		return nil, false
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        phone,
		Role:         role,
	}

	if err := h.db.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_user"})
		return nil, false
	}

	return &user, true
}

func userJSON(u *models.User) gin.H {
	return gin.H{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"phone": u.Phone,
		"role":  u.Role,
	}
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(user *models.User, shopID *uint) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"exp":  time.Now().Add(tokenTTL).Unix(),
		"iat":  time.Now().Unix(),
	}
	if shopID != nil {
		claims["shopId"] = *shopID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
