package queue

import (
	"context"

	domain "github.com/trimtime/trimtime-api/internal/domain/queue"
	"github.com/trimtime/trimtime-api/internal/dto"
)

// ListWaiting builds the shop-side queue view: every waiting booking with
// its position and estimated wait.
type ListWaiting struct {
	repo              domain.Repository
	avgServiceMinutes int
}

func NewListWaiting(
	repo domain.Repository,
	avgServiceMinutes int,
) *ListWaiting {
	return &ListWaiting{
		repo:              repo,
		avgServiceMinutes: avgServiceMinutes,
	}
}

func (uc *ListWaiting) Execute(
	ctx context.Context,
	shopID uint,
) ([]dto.QueueEntryDTO, error) {

	waiting, err := uc.repo.ListWaiting(ctx, shopID)
	if err != nil {
		return nil, err
	}

	domain.SortWaiting(waiting)

	out := make([]dto.QueueEntryDTO, 0, len(waiting))
	for i, b := range waiting {
		pos := i + 1
		out = append(out, dto.QueueEntryDTO{
			BookingID:            b.ID,
			Code:                 b.Code,
			CustomerName:         b.User.Name,
			CustomerPhone:        b.User.Phone,
			Service:              b.Service,
			JoinedAt:             b.JoinedAt,
			Position:             pos,
			EstimatedWaitMinutes: domain.EstimateWait(pos, uc.avgServiceMinutes),
		})
	}

	return out, nil
}
