package verification

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/glowbook/salon-api/internal/audit"
	domain "github.com/glowbook/salon-api/internal/domain/verification"
	"github.com/glowbook/salon-api/internal/httperr"
	"github.com/glowbook/salon-api/internal/models"
	"github.com/glowbook/salon-api/internal/timezone"
)

// ======================================================
// USE CASE — SET CHECKLIST ITEM
// ======================================================

type SetChecklistItemInput struct {
	ChecklistID uint
	Item        domain.Item
	Value       bool
	ReviewerID  uint

	// Optional free-text fields updated alongside the flag.
	PaystackBusinessName *string
	VerificationNotes    *string
}

type SetChecklistItem struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSetChecklistItem(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *SetChecklistItem {
	return &SetChecklistItem{
		repo:  repo,
		audit: audit,
	}
}

func (uc *SetChecklistItem) Execute(
	ctx context.Context,
	in SetChecklistItemInput,
) (*models.VerificationChecklist, error) {

	cl, err := uc.repo.GetChecklistByID(ctx, in.ChecklistID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("checklist_not_found")
		}
		return nil, err
	}

	now := timezone.Now()
	if err := domain.SetItem(cl, in.Item, in.Value, in.ReviewerID, now); err != nil {
		return nil, err
	}

	if in.PaystackBusinessName != nil {
		cl.PaystackBusinessName = *in.PaystackBusinessName
	}
	if in.VerificationNotes != nil {
		cl.VerificationNotes = *in.VerificationNotes
	}

	if err := uc.repo.UpdateChecklist(ctx, cl); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: &cl.BusinessProfileID,
		ActorID:    &in.ReviewerID,
		Action:     "checklist_item_set",
		Entity:     "verification_checklist",
		EntityID:   &cl.ID,
		Metadata: map[string]any{
			"item":  string(in.Item),
			"value": in.Value,
		},
	})

	return cl, nil
}
