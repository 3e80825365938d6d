package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/trimtime/trimtime-api/internal/cache"
	"github.com/trimtime/trimtime-api/internal/dto"
	"github.com/trimtime/trimtime-api/internal/httperr"
	"github.com/trimtime/trimtime-api/internal/httpresp"
	"github.com/trimtime/trimtime-api/internal/middleware"
	"github.com/trimtime/trimtime-api/internal/models"
	ucqueue "github.com/trimtime/trimtime-api/internal/usecase/queue"
)

// BookingHandler covers the customer side of the queue: joining, leaving,
// listing own bookings and checking live position.
type BookingHandler struct {
	db           *gorm.DB
	join         *ucqueue.JoinQueue
	leave        *ucqueue.LeaveQueue
	status       *ucqueue.QueueStatus
	queueLengths *cache.QueueLengths
}

func NewBookingHandler(
	db *gorm.DB,
	join *ucqueue.JoinQueue,
	leave *ucqueue.LeaveQueue,
	status *ucqueue.QueueStatus,
	queueLengths *cache.QueueLengths,
) *BookingHandler {
	return &BookingHandler{
		db:           db,
		join:         join,
		leave:        leave,
		status:       status,
		queueLengths: queueLengths,
	}
}

// --------- Requests ---------

type CreateBookingRequest struct {
	ShopID  uint   `json:"shop_id" binding:"required"`
	Service string `json:"service" binding:"required"`
}

// --------- Handlers ---------

func (h *BookingHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	b, err := h.join.Execute(c.Request.Context(), ucqueue.JoinQueueInput{
		UserID:  userID,
		ShopID:  req.ShopID,
		Service: req.Service,
	})

	if err != nil {
		switch {
		case httperr.IsBusiness(err, "shop_not_found"):
			httperr.NotFound(c, "shop_not_found", "Shop not found.")
		case httperr.IsBusiness(err, "shop_not_verified"):
			httperr.BadRequest(c, "shop_not_verified", "This shop is not accepting bookings yet.")
		case httperr.IsBusiness(err, "already_in_queue"):
			httperr.Conflict(c, "already_in_queue", "You are already in this shop's queue.")
		default:
			httperr.Internal(c, "failed_to_join_queue", "Could not join the queue.")
		}
		return
	}

	h.queueLengths.Invalidate(c.Request.Context(), b.ShopID)

	c.JSON(http.StatusCreated, b)
}

func (h *BookingHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var bookings []models.Booking
	if err := h.db.
		Preload("Shop").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {

		httperr.Internal(c, "failed_to_list_bookings", "Could not list bookings.")
		return
	}

	out := make([]dto.BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, dto.BookingListDTO{
			ID:       b.ID,
			Code:     b.Code,
			ShopID:   b.ShopID,
			ShopName: b.Shop.Name,
			Service:  b.Service,
			Status:   b.Status,
			JoinedAt: b.JoinedAt,
		})
	}

	httpresp.List(c, out)
}

// QueueStatus returns {in_queue, position, estimated_wait_minutes} for one
// of the caller's bookings.
func (h *BookingHandler) QueueStatus(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking id.")
		return
	}

	snapshot, err := h.status.Execute(c.Request.Context(), userID, uint(bookingID))
	if err != nil {
		if httperr.IsBusiness(err, "booking_not_found") {
			httperr.NotFound(c, "booking_not_found", "Booking not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_queue_status", "Could not compute queue status.")
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking id.")
		return
	}

	b, err := h.leave.Execute(c.Request.Context(), userID, uint(bookingID))
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "booking_not_found"):
			httperr.NotFound(c, "booking_not_found", "Booking not found.")
		case httperr.IsBusiness(err, "invalid_state"):
			httperr.BadRequest(c, "invalid_state", "Only waiting bookings can be cancelled.")
		default:
			httperr.Internal(c, "failed_to_cancel_booking", "Could not cancel the booking.")
		}
		return
	}

	h.queueLengths.Invalidate(c.Request.Context(), b.ShopID)

	c.JSON(http.StatusOK, b)
}
