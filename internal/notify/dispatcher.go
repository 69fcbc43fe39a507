package notify

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/glowbook/salon-api/internal/domain/verification"
	"github.com/glowbook/salon-api/internal/logger"
	"github.com/glowbook/salon-api/internal/mailer"
	"github.com/glowbook/salon-api/internal/models"
)

// ErrDeliveryFailed marks a notification that was logged but not delivered.
// Callers treat it as a warning: the state change that triggered the email
// stands either way.
var ErrDeliveryFailed = errors.New("notification delivery failed")

// Dispatcher sends verification status emails. Every attempt writes one
// VerificationEmailLog row, delivered or not; the dispatcher never
// deduplicates, so calling twice sends (and logs) twice.
type Dispatcher struct {
	db     *gorm.DB
	sender mailer.Sender
}

func NewDispatcher(db *gorm.DB, sender mailer.Sender) *Dispatcher {
	return &Dispatcher{db: db, sender: sender}
}

func (d *Dispatcher) NotifyStatusChange(
	ctx context.Context,
	profile *models.BusinessProfile,
	status verification.Status,
	notes string,
) error {

	subject, body, ok := render(status, profile.BusinessName, notes)
	if !ok {
		return fmt.Errorf("no template for status %q", status)
	}

	recipient := d.resolveRecipient(ctx, profile)

	var sendErr error
	if recipient == "" {
		sendErr = errors.New("no recipient email on profile or owner account")
	} else {
		sendErr = d.sender.Send(ctx, mailer.Email{
			To:      recipient,
			Subject: subject,
			HTML:    body,
		})
	}

	// The log row is written no matter how delivery went.
	logRow := models.VerificationEmailLog{
		BusinessProfileID: profile.ID,
		Status:            string(status),
		Recipient:         recipient,
		Subject:           subject,
		Body:              body,
		Sent:              sendErr == nil,
	}
	if sendErr != nil {
		logRow.ErrorMessage = sendErr.Error()
	}

	if err := d.db.WithContext(ctx).Create(&logRow).Error; err != nil {
		logger.Error("verification email log write failed",
			zap.Uint("business_profile_id", profile.ID),
			zap.Error(err),
		)
		return err
	}

	if sendErr != nil {
		logger.Warn("verification email not delivered",
			zap.Uint("business_profile_id", profile.ID),
			zap.String("status", string(status)),
			zap.Error(sendErr),
		)
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, sendErr)
	}

	return nil
}

// resolveRecipient prefers the business contact email and falls back to the
// owner's account email.
func (d *Dispatcher) resolveRecipient(ctx context.Context, profile *models.BusinessProfile) string {
	if profile.BusinessEmail != "" {
		return profile.BusinessEmail
	}

	var owner models.User
	if err := d.db.WithContext(ctx).
		Where("business_profile_id = ? AND role = ?", profile.ID, models.RoleOwner).
		First(&owner).Error; err != nil {
		return ""
	}
	return owner.Email
}
