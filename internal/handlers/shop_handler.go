package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/trimtime/trimtime-api/internal/cache"
	domain "github.com/trimtime/trimtime-api/internal/domain/queue"
	"github.com/trimtime/trimtime-api/internal/dto"
	"github.com/trimtime/trimtime-api/internal/httperr"
	"github.com/trimtime/trimtime-api/internal/httpresp"
	"github.com/trimtime/trimtime-api/internal/models"
)

// ShopHandler serves the public, unauthenticated shop directory. Only
// verified shops are visible here.
type ShopHandler struct {
	db           *gorm.DB
	queueLengths *cache.QueueLengths
}

func NewShopHandler(db *gorm.DB, queueLengths *cache.QueueLengths) *ShopHandler {
	return &ShopHandler{db: db, queueLengths: queueLengths}
}

func (h *ShopHandler) List(c *gin.Context) {
	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	area := strings.ToLower(strings.TrimSpace(c.Query("area")))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("verified = ?", true)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}
	if area != "" {
		q = q.Where("LOWER(area) = ?", area)
	}
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(area) LIKE ?", like, like)
	}

	var shops []models.Shop
	if err := q.Order("rating DESC, review_count DESC").Find(&shops).Error; err != nil {
		httperr.Internal(c, "failed_to_list_shops", "Could not list shops.")
		return
	}

	out := make([]dto.ShopListDTO, 0, len(shops))
	for _, s := range shops {
		out = append(out, h.toListDTO(c, s))
	}

	httpresp.List(c, out)
}

func (h *ShopHandler) Get(c *gin.Context) {
	shopID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_shop_id", "Invalid shop id.")
		return
	}

	var shop models.Shop
	if err := h.db.Where("id = ? AND verified = ?", uint(shopID), true).First(&shop).Error; err != nil {
		httperr.NotFound(c, "shop_not_found", "Shop not found.")
		return
	}

	c.JSON(http.StatusOK, h.toListDTO(c, shop))
}

// toListDTO attaches the live queue length, read through the redis cache
// with a direct count as fallback.
func (h *ShopHandler) toListDTO(c *gin.Context, s models.Shop) dto.ShopListDTO {
	length, ok := h.queueLengths.Get(c.Request.Context(), s.ID)
	if !ok {
		var count int64
		h.db.Model(&models.Booking{}).
			Where("shop_id = ? AND status = ?", s.ID, string(domain.StatusWaiting)).
			Count(&count)
		length = int(count)
		h.queueLengths.Set(c.Request.Context(), s.ID, length)
	}

	return dto.ShopListDTO{
		ID:          s.ID,
		Name:        s.Name,
		Category:    s.Category,
		Area:        s.Area,
		Address:     s.Address,
		LocationURL: s.LocationURL,
		Services:    s.Services,
		PhotoURL:    s.PhotoURL,
		Rating:      s.Rating,
		ReviewCount: s.ReviewCount,
		QueueLength: length,
	}
}
