package verification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/glowbook/salon-api/internal/httperr"
	"github.com/glowbook/salon-api/internal/models"
)

func TestParseItem(t *testing.T) {
	for _, raw := range []string{"documents_uploaded", "paystack_code_added", "paystack_business_verified"} {
		item, ok := ParseItem(raw)
		require.True(t, ok, raw)
		require.Equal(t, Item(raw), item)
	}

	_, ok := ParseItem("final_approval")
	require.False(t, ok, "final approval is not settable as a plain item")

	_, ok = ParseItem("documents_verified_by")
	require.False(t, ok, "metadata columns are not items")
}

func TestSetItem_TrueCarriesReviewerMetadata(t *testing.T) {
	cl := &models.VerificationChecklist{}
	now := time.Now()

	require.NoError(t, SetItem(cl, ItemDocumentsUploaded, true, 42, now))

	require.True(t, cl.DocumentsUploaded)
	require.NotNil(t, cl.DocumentsVerifiedBy)
	require.Equal(t, uint(42), *cl.DocumentsVerifiedBy)
	require.NotNil(t, cl.DocumentsVerifiedAt)
	require.Equal(t, now, *cl.DocumentsVerifiedAt)

	// Other triples untouched.
	require.False(t, cl.PaystackCodeAdded)
	require.Nil(t, cl.PaystackCodeVerifiedBy)
	require.Nil(t, cl.PaystackCodeVerifiedAt)
}

func TestSetItem_FalseClearsReviewerMetadata(t *testing.T) {
	now := time.Now()
	reviewer := uint(7)
	cl := &models.VerificationChecklist{
		PaystackCodeAdded:      true,
		PaystackCodeVerifiedBy: &reviewer,
		PaystackCodeVerifiedAt: &now,
	}

	require.NoError(t, SetItem(cl, ItemPaystackCodeAdded, false, 99, now))

	require.False(t, cl.PaystackCodeAdded)
	require.Nil(t, cl.PaystackCodeVerifiedBy)
	require.Nil(t, cl.PaystackCodeVerifiedAt)
}

func TestSetItem_UnknownItem(t *testing.T) {
	cl := &models.VerificationChecklist{}
	err := SetItem(cl, Item("final_approval"), true, 1, time.Now())
	require.True(t, httperr.IsBusiness(err, "invalid_checklist_item"))
}

func TestGrantFinalApproval_Gate(t *testing.T) {
	now := time.Now()
	cl := &models.VerificationChecklist{
		DocumentsUploaded: true,
		PaystackCodeAdded: true,
		// paystack_business_verified still open
	}

	err := GrantFinalApproval(cl, 5, now)
	require.True(t, httperr.IsBusiness(err, "requirements_not_met"))

	// Nothing was written.
	require.False(t, cl.FinalApproval)
	require.Nil(t, cl.FinalApprovedBy)
	require.Nil(t, cl.FinalApprovedAt)
}

func TestGrantFinalApproval_Success(t *testing.T) {
	now := time.Now()
	cl := &models.VerificationChecklist{
		DocumentsUploaded:        true,
		PaystackCodeAdded:        true,
		PaystackBusinessVerified: true,
	}

	require.NoError(t, GrantFinalApproval(cl, 5, now))
	require.True(t, cl.FinalApproval)
	require.Equal(t, uint(5), *cl.FinalApprovedBy)
	require.Equal(t, now, *cl.FinalApprovedAt)
	require.Equal(t, 100, cl.CompletionPercent())
}

func TestCompletionPercent(t *testing.T) {
	cl := &models.VerificationChecklist{}
	require.Equal(t, 0, cl.CompletionPercent())

	cl.DocumentsUploaded = true
	require.Equal(t, 25, cl.CompletionPercent())

	cl.PaystackCodeAdded = true
	cl.PaystackBusinessVerified = true
	require.Equal(t, 75, cl.CompletionPercent())
	require.True(t, cl.PrerequisitesMet())
}

func TestParseStatus(t *testing.T) {
	for _, raw := range []string{"pending", "in_review", "approved", "rejected"} {
		s, ok := ParseStatus(raw)
		require.True(t, ok, raw)
		require.Equal(t, Status(raw), s)
	}

	_, ok := ParseStatus("live")
	require.False(t, ok)
}

func TestCanTransition_ReviewerOverride(t *testing.T) {
	// Reviewers may move between any valid statuses, including straight to
	// approved and back out of approved.
	require.True(t, CanTransition(StatusPending, StatusApproved))
	require.True(t, CanTransition(StatusApproved, StatusRejected))
	require.False(t, CanTransition(StatusPending, Status("live")))
}
