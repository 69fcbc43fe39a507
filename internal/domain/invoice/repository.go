package invoice

import (
	"context"
	"time"

	"github.com/glowbook/salon-api/internal/models"
)

type Repository interface {
	GetHairdresser(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// ListCompletedBookings returns commission-bearing bookings for the
	// period, ordered by completion time.
	ListCompletedBookings(
		ctx context.Context,
		hairdresserID uint,
		start time.Time,
		end time.Time,
	) ([]models.Booking, error)
}
