package queue

import (
	"context"
	"time"

	domain "github.com/trimtime/trimtime-api/internal/domain/queue"
	"github.com/trimtime/trimtime-api/internal/events"
	"github.com/trimtime/trimtime-api/internal/httperr"
	"github.com/trimtime/trimtime-api/internal/models"
)

// LeaveQueue cancels a customer's own waiting booking.
type LeaveQueue struct {
	repo   domain.Repository
	events *events.Dispatcher
}

func NewLeaveQueue(
	repo domain.Repository,
	events *events.Dispatcher,
) *LeaveQueue {
	return &LeaveQueue{
		repo:   repo,
		events: events,
	}
}

func (uc *LeaveQueue) Execute(
	ctx context.Context,
	userID uint,
	bookingID uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingForUser(ctx, bookingID, userID)
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
		ShopID:   b.ShopID,
		UserID:   &userID,
		Action:   "queue_left",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
