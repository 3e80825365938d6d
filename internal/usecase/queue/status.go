package queue

import (
	"context"

	domain "github.com/trimtime/trimtime-api/internal/domain/queue"
	"github.com/trimtime/trimtime-api/internal/httperr"
)

// QueueStatus reports a customer's live position and estimated wait.
type QueueStatus struct {
	repo              domain.Repository
	avgServiceMinutes int
}

func NewQueueStatus(
	repo domain.Repository,
	avgServiceMinutes int,
) *QueueStatus {
	return &QueueStatus{
		repo:              repo,
		avgServiceMinutes: avgServiceMinutes,
	}
}

func (uc *QueueStatus) Execute(
	ctx context.Context,
	userID uint,
	bookingID uint,
) (domain.Snapshot, error) {

	b, err := uc.repo.GetBookingForUser(ctx, bookingID, userID)
	if err != nil {
		return domain.Snapshot{}, httperr.ErrBusiness("booking_not_found")
	}

	// Terminal bookings short-circuit without touching the queue.
	if domain.Status(b.Status) != domain.StatusWaiting {
		return domain.Snapshot{InQueue: false, Position: domain.NotInQueue}, nil
	}

	waiting, err := uc.repo.ListWaiting(ctx, b.ShopID)
	if err != nil {
		return domain.Snapshot{}, err
	}

	return domain.StatusFor(waiting, b.ID, uc.avgServiceMinutes), nil
}
