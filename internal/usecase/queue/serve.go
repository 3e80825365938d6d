package queue

import (
	"context"
	"time"

	domain "github.com/trimtime/trimtime-api/internal/domain/queue"
	"github.com/trimtime/trimtime-api/internal/events"
	"github.com/trimtime/trimtime-api/internal/httperr"
	"github.com/trimtime/trimtime-api/internal/models"
)

// ServeBooking marks a waiting booking done on behalf of the shop.
type ServeBooking struct {
	repo   domain.Repository
	events *events.Dispatcher
}

func NewServeBooking(
	repo domain.Repository,
	events *events.Dispatcher,
) *ServeBooking {
	return &ServeBooking{
		repo:   repo,
		events: events,
	}
}

func (uc *ServeBooking) Execute(
	ctx context.Context,
	shopID uint,
	barberID uint,
	bookingID uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingForShop(ctx, bookingID, shopID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	if err := domain.Serve(b, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.events.Dispatch(events.Event{
		ShopID:   shopID,
		UserID:   &barberID,
		Action:   "booking_served",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
