package queue

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/trimtime/trimtime-api/internal/domain/queue"
	"github.com/trimtime/trimtime-api/internal/events"
	"github.com/trimtime/trimtime-api/internal/httperr"
	"github.com/trimtime/trimtime-api/internal/models"
)

type JoinQueueInput struct {
	UserID  uint
	ShopID  uint
	Service string
}

type JoinQueue struct {
	repo   domain.Repository
	events *events.Dispatcher
}

func NewJoinQueue(
	repo domain.Repository,
	events *events.Dispatcher,
) *JoinQueue {
	return &JoinQueue{
		repo:   repo,
		events: events,
	}
}

func (uc *JoinQueue) Execute(
	ctx context.Context,
	in JoinQueueInput,
) (*models.Booking, error) {

	shop, err := uc.repo.GetShopByID(ctx, in.ShopID)
	if err != nil {
		return nil, httperr.ErrBusiness("shop_not_found")
	}

	if !shop.Verified {
		return nil, httperr.ErrBusiness("shop_not_verified")
	}

	b := &models.Booking{
		Code:     uuid.NewString(),
		UserID:   in.UserID,
		ShopID:   in.ShopID,
		Service:  in.Service,
		Status:   string(domain.InitialStatus()),
		JoinedAt: time.Now().UTC(),
	}

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		// Partial unique index: one waiting booking per (user, shop).
		if httperr.IsUniqueViolation(err) {
			return nil, httperr.ErrBusiness("already_in_queue")
		}
		return nil, err
	}

	uc.events.Dispatch(events.Event{
		ShopID:   in.ShopID,
		UserID:   &in.UserID,
		Action:   "queue_joined",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
