package queue

import (
	"context"
	"time"

	domain "github.com/trimtime/trimtime-api/internal/domain/queue"
	"github.com/trimtime/trimtime-api/internal/events"
	"github.com/trimtime/trimtime-api/internal/httperr"
	"github.com/trimtime/trimtime-api/internal/models"
)

// CancelForShop removes a waiting booking from the queue on the shop's
// side, e.g. when a customer asks at the counter.
type CancelForShop struct {
	repo   domain.Repository
	events *events.Dispatcher
}

func NewCancelForShop(
	repo domain.Repository,
	events *events.Dispatcher,
) *CancelForShop {
	return &CancelForShop{
		repo:   repo,
		events: events,
	}
}

func (uc *CancelForShop) Execute(
	ctx context.Context,
	shopID uint,
	barberID uint,
	bookingID uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingForShop(ctx, bookingID, shopID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	if err := domain.Cancel(b, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.events.Dispatch(events.Event{
		ShopID:   shopID,
		UserID:   &barberID,
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
