package verification

import (
	"time"

	"github.com/glowbook/salon-api/internal/httperr"
	"github.com/glowbook/salon-api/internal/models"
)

// ===============================
// Checklist Items
// ===============================

// Item names one reviewer sign-off on the checklist. Each item maps onto a
// fixed triple of columns (flag, verified-by, verified-at); the mapping is
// the switch in SetItem, resolved at compile time rather than derived from
// column-name strings.
type Item string

const (
	ItemDocumentsUploaded        Item = "documents_uploaded"
	ItemPaystackCodeAdded        Item = "paystack_code_added"
	ItemPaystackBusinessVerified Item = "paystack_business_verified"
)

func ParseItem(raw string) (Item, bool) {
	switch Item(raw) {
	case ItemDocumentsUploaded, ItemPaystackCodeAdded, ItemPaystackBusinessVerified:
		return Item(raw), true
	}
	return "", false
}

// ===============================
// Domain Actions
// ===============================

// SetItem flips one sign-off flag together with its reviewer metadata: a
// true flag always carries verified-by/verified-at, a false flag clears both.
func SetItem(cl *models.VerificationChecklist, item Item, value bool, reviewerID uint, now time.Time) error {
	var by *uint
	var at *time.Time
	if value {
		by = &reviewerID
		at = &now
	}

	switch item {
	case ItemDocumentsUploaded:
		cl.DocumentsUploaded = value
		cl.DocumentsVerifiedBy = by
		cl.DocumentsVerifiedAt = at
	case ItemPaystackCodeAdded:
		cl.PaystackCodeAdded = value
		cl.PaystackCodeVerifiedBy = by
		cl.PaystackCodeVerifiedAt = at
	case ItemPaystackBusinessVerified:
		cl.PaystackBusinessVerified = value
		cl.PaystackBusinessVerifiedBy = by
		cl.PaystackBusinessVerifiedAt = at
	default:
		return httperr.ErrBusiness("invalid_checklist_item")
	}

	return nil
}

// GrantFinalApproval sets the final sign-off. All three prerequisite items
// must already be true; otherwise nothing on the checklist changes.
func GrantFinalApproval(cl *models.VerificationChecklist, reviewerID uint, now time.Time) error {
	if !cl.PrerequisitesMet() {
		return httperr.ErrBusiness("requirements_not_met")
	}

	cl.FinalApproval = true
	cl.FinalApprovedBy = &reviewerID
	cl.FinalApprovedAt = &now
	return nil
}
