package queue

import (
	"context"
	"time"

	domain "github.com/trimtime/trimtime-api/internal/domain/queue"
	"github.com/trimtime/trimtime-api/internal/events"
	"github.com/trimtime/trimtime-api/internal/httperr"
	"github.com/trimtime/trimtime-api/internal/models"
)

type MarkNoShow struct {
	repo   domain.Repository
	events *events.Dispatcher
}

func NewMarkNoShow(
	repo domain.Repository,
	events *events.Dispatcher,
) *MarkNoShow {
	return &MarkNoShow{
		repo:   repo,
		events: events,
	}
}

func (uc *MarkNoShow) Execute(
	ctx context.Context,
	shopID uint,
	barberID uint,
	bookingID uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingForShop(ctx, bookingID, shopID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	if err := domain.MarkNoShow(b, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.events.Dispatch(events.Event{
		ShopID:   shopID,
		UserID:   &barberID,
		Action:   "booking_no_show",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
