package verification

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/glowbook/salon-api/internal/domain/verification"
	"github.com/glowbook/salon-api/internal/httperr"
	"github.com/glowbook/salon-api/internal/models"
)

// ======================================================
// USE CASE — GET OR CREATE CHECKLIST
// ======================================================

type GetOrCreateChecklist struct {
	repo domain.Repository
}

func NewGetOrCreateChecklist(repo domain.Repository) *GetOrCreateChecklist {
	return &GetOrCreateChecklist{repo: repo}
}

// Execute returns the checklist for the profile, creating an empty one on
// first view. Repeated calls are idempotent; a concurrent create loses to
// the unique index and falls back to the winner's row.
func (uc *GetOrCreateChecklist) Execute(
	ctx context.Context,
	profileID uint,
) (*models.VerificationChecklist, error) {

	if _, err := uc.repo.GetProfileByID(ctx, profileID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("profile_not_found")
		}
		return nil, err
	}

	cl, err := uc.repo.GetChecklistByProfile(ctx, profileID)
	if err == nil {
		return cl, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	fresh := &models.VerificationChecklist{BusinessProfileID: profileID}
	if err := uc.repo.CreateChecklist(ctx, fresh); err != nil {
		if httperr.IsBusiness(err, "checklist_exists") {
			return uc.repo.GetChecklistByProfile(ctx, profileID)
		}
		return nil, err
	}

	return fresh, nil
}
