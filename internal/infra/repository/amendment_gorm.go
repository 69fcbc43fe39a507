package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/glowbook/salon-api/internal/domain/amendment"
	"github.com/glowbook/salon-api/internal/models"
)

type AmendmentGormRepository struct {
	db *gorm.DB
}

func NewAmendmentGormRepository(db *gorm.DB) *AmendmentGormRepository {
	return &AmendmentGormRepository{db: db}
}

func (r *AmendmentGormRepository) GetProfileByID(
	ctx context.Context,
	id uint,
) (*models.BusinessProfile, error) {

	var profile models.BusinessProfile
	if err := r.db.WithContext(ctx).First(&profile, id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *AmendmentGormRepository) UpdateProfile(
	ctx context.Context,
	profile *models.BusinessProfile,
) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *AmendmentGormRepository) CreateAmendment(
	ctx context.Context,
	req *models.AmendmentRequest,
) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *AmendmentGormRepository) GetPendingAmendment(
	ctx context.Context,
	id uint,
) (*models.AmendmentRequest, error) {

	var req models.AmendmentRequest
	if err := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, models.AmendmentPending).
		First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *AmendmentGormRepository) UpdateAmendment(
	ctx context.Context,
	req *models.AmendmentRequest,
) error {
	return r.db.WithContext(ctx).Save(req).Error
}

// Compile-time check
var _ domain.Repository = (*AmendmentGormRepository)(nil)
