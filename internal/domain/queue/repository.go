package queue

import (
	"context"

	"github.com/trimtime/trimtime-api/internal/models"
)

type Repository interface {
	// -------- Shop --------
	GetShopByID(
		ctx context.Context,
		id uint,
	) (*models.Shop, error)

	// -------- Booking (join / leave) --------
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	GetBookingForUser(
		ctx context.Context,
		bookingID uint,
		userID uint,
	) (*models.Booking, error)

	GetBookingForShop(
		ctx context.Context,
		bookingID uint,
		shopID uint,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Queue reads --------
	// ListWaiting returns the shop's waiting bookings ordered by
	// joined_at ascending, booking ID as tie-break.
	ListWaiting(
		ctx context.Context,
		shopID uint,
	) ([]models.Booking, error)
}
