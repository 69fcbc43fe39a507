package verification

import (
	"context"

	"github.com/glowbook/salon-api/internal/models"
)

type Repository interface {
	// -------- Business profile --------
	GetProfileByID(
		ctx context.Context,
		id uint,
	) (*models.BusinessProfile, error)

	UpdateProfile(
		ctx context.Context,
		profile *models.BusinessProfile,
	) error

	// -------- Checklist --------
	GetChecklistByID(
		ctx context.Context,
		id uint,
	) (*models.VerificationChecklist, error)

	GetChecklistByProfile(
		ctx context.Context,
		profileID uint,
	) (*models.VerificationChecklist, error)

	CreateChecklist(
		ctx context.Context,
		cl *models.VerificationChecklist,
	) error

	UpdateChecklist(
		ctx context.Context,
		cl *models.VerificationChecklist,
	) error
}
