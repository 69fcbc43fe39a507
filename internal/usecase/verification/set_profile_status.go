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
// USE CASE — SET PROFILE STATUS
// ======================================================

type SetProfileStatusInput struct {
	ProfileID  uint
	Status     domain.Status
	ReviewerID uint
	Notes      string
}

type SetProfileStatusOutput struct {
	Profile          *models.BusinessProfile `json:"profile"`
	NotificationSent bool                    `json:"notification_sent"`
}

// SetProfileStatus is the direct transition path: usable before checklist
// completion, always notifies. It can put a profile at approved without
// final_approval on the checklist — a deliberate reviewer override.
type SetProfileStatus struct {
	repo     domain.Repository
	notifier Notifier
	audit    *audit.Dispatcher
}

func NewSetProfileStatus(
	repo domain.Repository,
	notifier Notifier,
	audit *audit.Dispatcher,
) *SetProfileStatus {
	return &SetProfileStatus{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
	}
}

func (uc *SetProfileStatus) Execute(
	ctx context.Context,
	in SetProfileStatusInput,
) (*SetProfileStatusOutput, error) {

	if !domain.IsValidStatus(in.Status) {
		return nil, httperr.ErrBusiness("invalid_status")
	}

	profile, err := uc.repo.GetProfileByID(ctx, in.ProfileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("profile_not_found")
		}
		return nil, err
	}

	now := timezone.Now()
	from := domain.Status(profile.VerificationStatus)

	profile.VerificationStatus = string(in.Status)
	switch in.Status {
	case domain.StatusInReview:
		profile.SubmittedAt = &now
	case domain.StatusApproved:
		profile.ApprovedAt = &now
	}

	if err := uc.repo.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: &profile.ID,
		ActorID:    &in.ReviewerID,
		Action:     "verification_status_set",
		Entity:     "business_profile",
		EntityID:   &profile.ID,
		Metadata: map[string]any{
			"from": string(from),
			"to":   string(in.Status),
		},
	})

	out := &SetProfileStatusOutput{
		Profile:          profile,
		NotificationSent: true,
	}
	if err := uc.notifier.NotifyStatusChange(ctx, profile, in.Status, in.Notes); err != nil {
		out.NotificationSent = false
	}

	return out, nil
}
