package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/trimtime/trimtime-api/internal/domain/queue"
	"github.com/trimtime/trimtime-api/internal/httperr"
	"github.com/trimtime/trimtime-api/internal/httpresp"
	"github.com/trimtime/trimtime-api/internal/middleware"
	"github.com/trimtime/trimtime-api/internal/models"
)

type ReviewHandler struct {
	db *gorm.DB
}

func NewReviewHandler(db *gorm.DB) *ReviewHandler {
	return &ReviewHandler{db: db}
}

type CreateReviewRequest struct {
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment"`
	BookingID *uint  `json:"booking_id,omitempty"`
}

// getVerifiedShop resolves the :id param to a verified shop. Unverified
// shops stay invisible, so both outcomes read as not found.
func (h *ReviewHandler) getVerifiedShop(c *gin.Context) (*models.Shop, bool) {
	shopID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_shop_id", "Invalid shop id.")
		return nil, false
	}

	var shop models.Shop
	if err := h.db.Where("id = ? AND verified = ?", uint(shopID), true).First(&shop).Error; err != nil {
		httperr.NotFound(c, "shop_not_found", "Shop not found.")
		return nil, false
	}

	return &shop, true
}

func (h *ReviewHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	shop, ok := h.getVerifiedShop(c)
	if !ok {
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Rating must be between 1 and 5.")
		return
	}

	if req.BookingID != nil {
		var b models.Booking
		if err := h.db.
			Where("id = ? AND user_id = ? AND shop_id = ? AND status = ?",
				*req.BookingID, userID, shop.ID, string(domain.StatusDone)).
			First(&b).Error; err != nil {

			httperr.BadRequest(c, "invalid_booking", "The booking does not match a served visit at this shop.")
			return
		}
	}

	review := models.Review{
		ShopID:    shop.ID,
		UserID:    userID,
		BookingID: req.BookingID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	// The aggregate moves in the same transaction as the review row, and
	// the arithmetic runs in SQL against the current values, so concurrent
	// reviews cannot overwrite each other's contribution.
	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return err
		}

		return tx.Model(&models.Shop{}).
			Where("id = ?", shop.ID).
			Updates(map[string]any{
				"rating":       gorm.Expr("(rating * review_count + ?) / (review_count + 1)", float64(req.Rating)),
				"review_count": gorm.Expr("review_count + 1"),
			}).Error
	})

	if err != nil {
		httperr.Internal(c, "failed_to_create_review", "Could not save the review.")
		return
	}

	c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) List(c *gin.Context) {
	shop, ok := h.getVerifiedShop(c)
	if !ok {
		return
	}

	var reviews []models.Review
	if err := h.db.
		Where("shop_id = ?", shop.ID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {

		httperr.Internal(c, "failed_to_list_reviews", "Could not list reviews.")
		return
	}

	httpresp.List(c, reviews)
}
