package queue

import "github.com/trimtime/trimtime-api/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusWaiting   Status = "waiting"
	StatusDone      Status = "done"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

// ===============================
// Validations
// ===============================

// Only waiting bookings can change state; everything else is terminal.

func CanServe(current Status) error {
	if current != StatusWaiting {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanCancel(current Status) error {
	if current != StatusWaiting {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanMarkNoShow(current Status) error {
	if current != StatusWaiting {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusWaiting
}
