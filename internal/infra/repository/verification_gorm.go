package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domain "github.com/glowbook/salon-api/internal/domain/verification"
	"github.com/glowbook/salon-api/internal/httperr"
	"github.com/glowbook/salon-api/internal/models"
)

type VerificationGormRepository struct {
	db *gorm.DB
}

func NewVerificationGormRepository(db *gorm.DB) *VerificationGormRepository {
	return &VerificationGormRepository{db: db}
}

// --------------------------------------------------
// Business profile
// --------------------------------------------------

func (r *VerificationGormRepository) GetProfileByID(
	ctx context.Context,
	id uint,
) (*models.BusinessProfile, error) {

	var profile models.BusinessProfile
	if err := r.db.WithContext(ctx).First(&profile, id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *VerificationGormRepository) UpdateProfile(
	ctx context.Context,
	profile *models.BusinessProfile,
) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

// --------------------------------------------------
// Checklist
// --------------------------------------------------

func (r *VerificationGormRepository) GetChecklistByID(
	ctx context.Context,
	id uint,
) (*models.VerificationChecklist, error) {

	var cl models.VerificationChecklist
	if err := r.db.WithContext(ctx).First(&cl, id).Error; err != nil {
		return nil, err
	}
	return &cl, nil
}

func (r *VerificationGormRepository) GetChecklistByProfile(
	ctx context.Context,
	profileID uint,
) (*models.VerificationChecklist, error) {

	var cl models.VerificationChecklist
	if err := r.db.WithContext(ctx).
		Where("business_profile_id = ?", profileID).
		First(&cl).Error; err != nil {
		return nil, err
	}
	return &cl, nil
}

func (r *VerificationGormRepository) CreateChecklist(
	ctx context.Context,
	cl *models.VerificationChecklist,
) error {

	err := r.db.WithContext(ctx).Create(cl).Error
	if err == nil {
		return nil
	}

	// Two reviewers opening the same profile can race the lazy create; the
	// unique index on business_profile_id decides the winner.
	if isUniqueViolation(err) {
		return httperr.ErrBusiness("checklist_exists")
	}
	return err
}

func (r *VerificationGormRepository) UpdateChecklist(
	ctx context.Context,
	cl *models.VerificationChecklist,
) error {
	return r.db.WithContext(ctx).Save(cl).Error
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// Compile-time check
var _ domain.Repository = (*VerificationGormRepository)(nil)
