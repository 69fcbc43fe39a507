package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/glowbook/salon-api/internal/domain/invoice"
	"github.com/glowbook/salon-api/internal/models"
)

type InvoiceGormRepository struct {
	db *gorm.DB
}

func NewInvoiceGormRepository(db *gorm.DB) *InvoiceGormRepository {
	return &InvoiceGormRepository{db: db}
}

func (r *InvoiceGormRepository) GetHairdresser(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND role = ?", id, models.RoleStylist).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *InvoiceGormRepository) ListCompletedBookings(
	ctx context.Context,
	hairdresserID uint,
	start time.Time,
	end time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Where(
			"hairdresser_id = ? AND status = 'completed' AND completed_at >= ? AND completed_at < ?",
			hairdresserID, start, end,
		).
		Order("completed_at ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

// Compile-time check
var _ domain.Repository = (*InvoiceGormRepository)(nil)
