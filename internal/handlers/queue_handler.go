package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/trimtime/trimtime-api/internal/cache"
	"github.com/trimtime/trimtime-api/internal/httperr"
	"github.com/trimtime/trimtime-api/internal/httpresp"
	"github.com/trimtime/trimtime-api/internal/middleware"
	"github.com/trimtime/trimtime-api/internal/models"
	ucqueue "github.com/trimtime/trimtime-api/internal/usecase/queue"
)

// QueueHandler is the shop side: the barber works through the waiting list.
type QueueHandler struct {
	listWaiting  *ucqueue.ListWaiting
	serve        *ucqueue.ServeBooking
	noShow       *ucqueue.MarkNoShow
	cancel       *ucqueue.CancelForShop
	queueLengths *cache.QueueLengths
}

func NewQueueHandler(
	listWaiting *ucqueue.ListWaiting,
	serve *ucqueue.ServeBooking,
	noShow *ucqueue.MarkNoShow,
	cancel *ucqueue.CancelForShop,
	queueLengths *cache.QueueLengths,
) *QueueHandler {
	return &QueueHandler{
		listWaiting:  listWaiting,
		serve:        serve,
		noShow:       noShow,
		cancel:       cancel,
		queueLengths: queueLengths,
	}
}

func (h *QueueHandler) shopID(c *gin.Context) (uint, bool) {
	shopIDVal, exists := c.Get(middleware.ContextShopID)
	if !exists {
		httperr.Forbidden(c, "no_shop", "No shop is linked to this account.")
		return 0, false
	}
	return shopIDVal.(uint), true
}

func (h *QueueHandler) List(c *gin.Context) {
	shopID, ok := h.shopID(c)
	if !ok {
		return
	}

	entries, err := h.listWaiting.Execute(c.Request.Context(), shopID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_queue", "Could not load the queue.")
		return
	}

	httpresp.List(c, entries)
}

type queueAction func(c *gin.Context, shopID, barberID, bookingID uint) (*models.Booking, error)

func (h *QueueHandler) run(c *gin.Context, action queueAction) {
	shopID, ok := h.shopID(c)
	if !ok {
		return
	}
	barberID := c.MustGet(middleware.ContextUserID).(uint)

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking id.")
		return
	}

	b, err := action(c, shopID, barberID, uint(bookingID))
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "booking_not_found"):
			httperr.NotFound(c, "booking_not_found", "Booking not found.")
		case httperr.IsBusiness(err, "invalid_state"):
			httperr.BadRequest(c, "invalid_state", "Only waiting bookings can change state.")
		default:
			httperr.Internal(c, "failed_to_update_booking", "Could not update the booking.")
		}
		return
	}

	h.queueLengths.Invalidate(c.Request.Context(), shopID)

	c.JSON(http.StatusOK, b)
}

func (h *QueueHandler) Serve(c *gin.Context) {
	h.run(c, func(c *gin.Context, shopID, barberID, bookingID uint) (*models.Booking, error) {
		return h.serve.Execute(c.Request.Context(), shopID, barberID, bookingID)
	})
}

func (h *QueueHandler) NoShow(c *gin.Context) {
	h.run(c, func(c *gin.Context, shopID, barberID, bookingID uint) (*models.Booking, error) {
		return h.noShow.Execute(c.Request.Context(), shopID, barberID, bookingID)
	})
}

func (h *QueueHandler) Cancel(c *gin.Context) {
	h.run(c, func(c *gin.Context, shopID, barberID, bookingID uint) (*models.Booking, error) {
		return h.cancel.Execute(c.Request.Context(), shopID, barberID, bookingID)
	})
}
