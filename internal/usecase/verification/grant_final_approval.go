package verification

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/glowbook/salon-api/internal/audit"
	domain "github.com/glowbook/salon-api/internal/domain/verification"
	"github.com/glowbook/salon-api/internal/httperr"
	"github.com/glowbook/salon-api/internal/logger"
	"github.com/glowbook/salon-api/internal/models"
	"github.com/glowbook/salon-api/internal/timezone"
)

// ======================================================
// USE CASE — GRANT FINAL APPROVAL
// ======================================================

type GrantFinalApprovalOutput struct {
	Checklist        *models.VerificationChecklist `json:"checklist"`
	Profile          *models.BusinessProfile       `json:"profile"`
	NotificationSent bool                          `json:"notification_sent"`
}

// GrantFinalApproval runs the three-stage approval: checklist sign-off,
// profile status write, notification. The stages are separate store calls
// with no shared transaction; a failure after the checklist write is
// surfaced to the caller and NOT rolled back — the checklist keeps its
// final_approval and the operator retries the rest.
type GrantFinalApproval struct {
	repo     domain.Repository
	notifier Notifier
	audit    *audit.Dispatcher
}

func NewGrantFinalApproval(
	repo domain.Repository,
	notifier Notifier,
	audit *audit.Dispatcher,
) *GrantFinalApproval {
	return &GrantFinalApproval{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
	}
}

func (uc *GrantFinalApproval) Execute(
	ctx context.Context,
	checklistID uint,
	reviewerID uint,
) (*GrantFinalApprovalOutput, error) {

	cl, err := uc.repo.GetChecklistByID(ctx, checklistID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("checklist_not_found")
		}
		return nil, err
	}

	now := timezone.Now()

	// Stage 1 — checklist. Rejected outright when prerequisites are open;
	// nothing is written in that case.
	if err := domain.GrantFinalApproval(cl, reviewerID, now); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateChecklist(ctx, cl); err != nil {
		return nil, err
	}

	// Stage 2 — profile status.
	profile, err := uc.repo.GetProfileByID(ctx, cl.BusinessProfileID)
	if err == nil {
		profile.VerificationStatus = string(domain.StatusApproved)
		profile.ApprovedAt = &now
		err = uc.repo.UpdateProfile(ctx, profile)
	}
	if err != nil {
		logger.Error("final approval: checklist updated but profile status write failed",
			zap.Uint("checklist_id", cl.ID),
			zap.Uint("business_profile_id", cl.BusinessProfileID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("checklist approved but profile status not updated: %w", err)
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: &cl.BusinessProfileID,
		ActorID:    &reviewerID,
		Action:     "final_approval_granted",
		Entity:     "verification_checklist",
		EntityID:   &cl.ID,
	})

	// Stage 3 — notification. Logged by the dispatcher either way; a
	// delivery failure does not undo the approval.
	out := &GrantFinalApprovalOutput{
		Checklist:        cl,
		Profile:          profile,
		NotificationSent: true,
	}
	if err := uc.notifier.NotifyStatusChange(ctx, profile, domain.StatusApproved, cl.VerificationNotes); err != nil {
		out.NotificationSent = false
	}

	return out, nil
}
