package amendment

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/glowbook/salon-api/internal/audit"
	domain "github.com/glowbook/salon-api/internal/domain/amendment"
	"github.com/glowbook/salon-api/internal/httperr"
	"github.com/glowbook/salon-api/internal/models"
	"github.com/glowbook/salon-api/internal/timezone"
)

// ======================================================
// USE CASE — RESOLVE AMENDMENT
// ======================================================

const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

type ResolveAmendmentInput struct {
	AmendmentID uint
	Action      string
	ReviewerID  uint
	Reason      string
}

type ResolveAmendment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewResolveAmendment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ResolveAmendment {
	return &ResolveAmendment{
		repo:  repo,
		audit: audit,
	}
}

// Execute resolves a pending amendment exactly once. A request that was
// already resolved is reported the same way as one that never existed.
// On approve the profile write happens before the request flips to
// approved; the two writes are separate calls, not a transaction.
func (uc *ResolveAmendment) Execute(
	ctx context.Context,
	in ResolveAmendmentInput,
) (*models.AmendmentRequest, error) {

	if in.Action != ActionApprove && in.Action != ActionReject {
		return nil, httperr.ErrBusiness("invalid_action")
	}

	req, err := uc.repo.GetPendingAmendment(ctx, in.AmendmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("amendment_not_found")
		}
		return nil, err
	}

	now := timezone.Now()

	if in.Action == ActionApprove {
		field, ok := domain.ParseField(req.Field)
		if !ok {
			return nil, httperr.ErrBusiness("invalid_amendment_field")
		}

		profile, err := uc.repo.GetProfileByID(ctx, req.BusinessProfileID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, httperr.ErrBusiness("profile_not_found")
			}
			return nil, err
		}

		if err := domain.Apply(profile, field, req.NewValue); err != nil {
			return nil, err
		}
		if err := uc.repo.UpdateProfile(ctx, profile); err != nil {
			return nil, err
		}

		req.Status = models.AmendmentApproved
	} else {
		req.Status = models.AmendmentRejected
	}

	req.ReviewedBy = &in.ReviewerID
	req.ReviewedAt = &now
	req.ReviewReason = in.Reason

	if err := uc.repo.UpdateAmendment(ctx, req); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: &req.BusinessProfileID,
		ActorID:    &in.ReviewerID,
		Action:     "amendment_" + req.Status,
		Entity:     "amendment_request",
		EntityID:   &req.ID,
	})

	return req, nil
}
