package amendment

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/glowbook/salon-api/internal/audit"
	domain "github.com/glowbook/salon-api/internal/domain/amendment"
	"github.com/glowbook/salon-api/internal/httperr"
	"github.com/glowbook/salon-api/internal/models"
)

// ======================================================
// USE CASE — REQUEST AMENDMENT
// ======================================================

type RequestAmendmentInput struct {
	ProfileID   uint
	Field       string
	OldValue    string
	NewValue    string
	Reason      string
	RequestedBy uint
}

type RequestAmendment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRequestAmendment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RequestAmendment {
	return &RequestAmendment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *RequestAmendment) Execute(
	ctx context.Context,
	in RequestAmendmentInput,
) (*models.AmendmentRequest, error) {

	field, ok := domain.ParseField(in.Field)
	if !ok {
		return nil, httperr.ErrBusiness("invalid_amendment_field")
	}

	if in.NewValue == "" {
		return nil, httperr.ErrBusiness("missing_new_value")
	}

	if _, err := uc.repo.GetProfileByID(ctx, in.ProfileID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("profile_not_found")
		}
		return nil, err
	}

	req := &models.AmendmentRequest{
		BusinessProfileID: in.ProfileID,
		Field:             string(field),
		OldValue:          in.OldValue,
		NewValue:          in.NewValue,
		Reason:            in.Reason,
		Status:            models.AmendmentPending,
		RequestedBy:       in.RequestedBy,
	}

	if err := uc.repo.CreateAmendment(ctx, req); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: &in.ProfileID,
		ActorID:    &in.RequestedBy,
		Action:     "amendment_requested",
		Entity:     "amendment_request",
		EntityID:   &req.ID,
		Metadata:   map[string]any{"field": string(field)},
	})

	return req, nil
}
