package queue

import (
	"sort"

	"github.com/trimtime/trimtime-api/internal/models"
)

// Snapshot is the queue view for one booking at read time. Position is the
// 1-based rank among the shop's waiting bookings ordered by join time;
// callers must check InQueue before trusting it.
type Snapshot struct {
	InQueue              bool `json:"in_queue"`
	Position             int  `json:"position"`
	EstimatedWaitMinutes int  `json:"estimated_wait_minutes"`
}

// NotInQueue is the Position value reported when the target booking is not
// among the waiting set.
const NotInQueue = 0

// SortWaiting orders bookings by join time ascending. Equal timestamps fall
// back to the booking ID, so two simultaneous joins still rank
// deterministically in insertion order.
func SortWaiting(waiting []models.Booking) {
	sort.SliceStable(waiting, func(i, j int) bool {
		if waiting[i].JoinedAt.Equal(waiting[j].JoinedAt) {
			return waiting[i].ID < waiting[j].ID
		}
		return waiting[i].JoinedAt.Before(waiting[j].JoinedAt)
	})
}

// Rank returns the 1-based position of bookingID within the waiting set, or
// NotInQueue when the booking is absent (not waiting, wrong shop, or the
// queue is empty). The input is re-sorted defensively; the store already
// orders by joined_at, id.
func Rank(waiting []models.Booking, bookingID uint) int {
	SortWaiting(waiting)

	for i, b := range waiting {
		if b.ID == bookingID {
			return i + 1
		}
	}
	return NotInQueue
}

// EstimateWait converts a rank into minutes: the head of the queue waits 0,
// every position behind it adds one average service slot.
func EstimateWait(rank int, avgServiceMinutes int) int {
	if rank <= 0 {
		return 0
	}
	return (rank - 1) * avgServiceMinutes
}

// StatusFor computes the full snapshot for one booking.
func StatusFor(waiting []models.Booking, bookingID uint, avgServiceMinutes int) Snapshot {
	rank := Rank(waiting, bookingID)
	if rank == NotInQueue {
		return Snapshot{InQueue: false, Position: NotInQueue, EstimatedWaitMinutes: 0}
	}

	return Snapshot{
		InQueue:              true,
		Position:             rank,
		EstimatedWaitMinutes: EstimateWait(rank, avgServiceMinutes),
	}
}
