package queue

import (
	"time"

	"github.com/trimtime/trimtime-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Serve(b *models.Booking, now time.Time) error {
	if err := CanServe(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusDone)
	b.UpdatedAt = now
	return nil
}

func Cancel(b *models.Booking, now time.Time) error {
	if err := CanCancel(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCancelled)
	b.UpdatedAt = now
	return nil
}

func MarkNoShow(b *models.Booking, now time.Time) error {
	if err := CanMarkNoShow(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusNoShow)
	b.UpdatedAt = now
	return nil
}
