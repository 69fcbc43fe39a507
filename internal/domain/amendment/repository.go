package amendment

import (
	"context"

	"github.com/glowbook/salon-api/internal/models"
)

type Repository interface {
	GetProfileByID(
		ctx context.Context,
		id uint,
	) (*models.BusinessProfile, error)

	UpdateProfile(
		ctx context.Context,
		profile *models.BusinessProfile,
	) error

	CreateAmendment(
		ctx context.Context,
		req *models.AmendmentRequest,
	) error

	// GetPendingAmendment looks up an amendment that is still pending.
	// "Never existed" and "already resolved" are indistinguishable here.
	GetPendingAmendment(
		ctx context.Context,
		id uint,
	) (*models.AmendmentRequest, error)

	UpdateAmendment(
		ctx context.Context,
		req *models.AmendmentRequest,
	) error
}
