package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/trimtime/trimtime-api/internal/httperr"
	"github.com/trimtime/trimtime-api/internal/middleware"
	"github.com/trimtime/trimtime-api/internal/models"
	"github.com/trimtime/trimtime-api/internal/storage"
)

// MyShopHandler covers the barber-facing shop profile routes.
type MyShopHandler struct {
	db     *gorm.DB
	photos *storage.PhotoStore
}

func NewMyShopHandler(db *gorm.DB, photos *storage.PhotoStore) *MyShopHandler {
	return &MyShopHandler{db: db, photos: photos}
}

type UpdateShopRequest struct {
	Name        *string   `json:"name,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Area        *string   `json:"area,omitempty"`
	Address     *string   `json:"address,omitempty"`
	LocationURL *string   `json:"location_url,omitempty"`
	Services    *[]string `json:"services,omitempty"`
}

func (h *MyShopHandler) getShop(c *gin.Context) (*models.Shop, bool) {
	shopIDVal, exists := c.Get(middleware.ContextShopID)
	if !exists {
		httperr.Forbidden(c, "no_shop", "No shop is linked to this account.")
		return nil, false
	}

	var shop models.Shop
	if err := h.db.First(&shop, shopIDVal.(uint)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "shop_not_found", "Shop not found.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_shop", "Could not load shop.")
		return nil, false
	}

	return &shop, true
}

func (h *MyShopHandler) Get(c *gin.Context) {
	shop, ok := h.getShop(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, shop)
}

func (h *MyShopHandler) Update(c *gin.Context) {
	shop, ok := h.getShop(c)
	if !ok {
		return
	}

	var req UpdateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if req.Name != nil {
		if *req.Name == "" {
			httperr.BadRequest(c, "invalid_name", "Shop name cannot be empty.")
			return
		}
		shop.Name = *req.Name
	}
	if req.Category != nil {
		shop.Category = strings.ToLower(strings.TrimSpace(*req.Category))
	}
	if req.Area != nil {
		shop.Area = *req.Area
	}
	if req.Address != nil {
		shop.Address = *req.Address
	}
	if req.LocationURL != nil {
		shop.LocationURL = *req.LocationURL
	}
	if req.Services != nil {
		services, _ := json.Marshal(*req.Services)
		shop.Services = datatypes.JSON(services)
	}

	// Verified is deliberately not settable here; only the admin process
	// flips it.
	if err := h.db.Save(shop).Error; err != nil {
		httperr.Internal(c, "failed_to_update_shop", "Could not save shop.")
		return
	}

	c.JSON(http.StatusOK, shop)
}

func (h *MyShopHandler) UploadPhoto(c *gin.Context) {
	shop, ok := h.getShop(c)
	if !ok {
		return
	}

	if !h.photos.Enabled() {
		httperr.Internal(c, "storage_disabled", "Photo storage is not configured.")
		return
	}

	file, _, err := c.Request.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "A photo file is required.")
		return
	}
	defer file.Close()

	url, err := h.photos.UploadShopPhoto(c.Request.Context(), shop.ID, file)
	if err != nil {
		if httperr.IsBusiness(err, "invalid_image") {
			httperr.BadRequest(c, "invalid_image", "The file is not a valid JPEG or PNG image.")
			return
		}
		httperr.Internal(c, "failed_to_upload_photo", "Could not store the photo.")
		return
	}

	shop.PhotoURL = url
	if err := h.db.Save(shop).Error; err != nil {
		httperr.Internal(c, "failed_to_update_shop", "Could not save shop.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"photo_url": url})
}
