package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/trimtime/trimtime-api/internal/httperr"
	"github.com/trimtime/trimtime-api/internal/middleware"
	"github.com/trimtime/trimtime-api/internal/models"
)

// QueueEventsHandler exposes the append-only event log to the shop owner.
type QueueEventsHandler struct {
	db *gorm.DB
}

func NewQueueEventsHandler(db *gorm.DB) *QueueEventsHandler {
	return &QueueEventsHandler{db: db}
}

func (h *QueueEventsHandler) List(c *gin.Context) {
	shopIDVal, exists := c.Get(middleware.ContextShopID)
	if !exists {
		httperr.Forbidden(c, "no_shop", "No shop is linked to this account.")
		return
	}
	shopID := shopIDVal.(uint)

	limit := 50
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= 200 {
		limit = v
	}

	offset := 0
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v > 0 {
		offset = v
	}

	var events []models.QueueEvent
	if err := h.db.
		Where("shop_id = ?", shopID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&events).Error; err != nil {

		httperr.Internal(c, "failed_to_list_events", "Could not list queue events.")
		return
	}

	var total int64
	h.db.Model(&models.QueueEvent{}).Where("shop_id = ?", shopID).Count(&total)

	c.JSON(http.StatusOK, gin.H{
		"data":   events,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}
