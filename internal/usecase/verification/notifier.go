package verification

import (
	"context"

	domain "github.com/glowbook/salon-api/internal/domain/verification"
	"github.com/glowbook/salon-api/internal/models"
)

// Notifier fans a status change out to the business. Implementations log
// every attempt; a delivery failure comes back as notify.ErrDeliveryFailed
// and never blocks the triggering state change.
type Notifier interface {
	NotifyStatusChange(
		ctx context.Context,
		profile *models.BusinessProfile,
		status domain.Status,
		notes string,
	) error
}
