package verification

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/glowbook/salon-api/internal/audit"
	dbpkg "github.com/glowbook/salon-api/internal/db"
	domain "github.com/glowbook/salon-api/internal/domain/verification"
	"github.com/glowbook/salon-api/internal/httperr"
	infraRepo "github.com/glowbook/salon-api/internal/infra/repository"
	"github.com/glowbook/salon-api/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	require.NoError(t, dbpkg.Migrate(db))
	return db
}

func seedProfile(t *testing.T, db *gorm.DB, status string) *models.BusinessProfile {
	t.Helper()
	profile := &models.BusinessProfile{
		BusinessName:       "Glow Studio",
		Slug:               fmt.Sprintf("glow-studio-%d", time.Now().UnixNano()),
		BusinessEmail:      "hello@glowstudio.test",
		VerificationStatus: status,
	}
	require.NoError(t, db.Create(profile).Error)
	return profile
}

type fakeNotifier struct {
	calls []domain.Status
	err   error
}

func (f *fakeNotifier) NotifyStatusChange(ctx context.Context, profile *models.BusinessProfile, status domain.Status, notes string) error {
	f.calls = append(f.calls, status)
	return f.err
}

func newDispatcher(db *gorm.DB) *audit.Dispatcher {
	return audit.NewDispatcher(audit.New(db))
}

// --------- GetOrCreateChecklist ---------

func TestGetOrCreateChecklist_CreatesThenReuses(t *testing.T) {
	db := newTestDB(t)
	repo := infraRepo.NewVerificationGormRepository(db)
	uc := NewGetOrCreateChecklist(repo)
	ctx := context.Background()

	profile := seedProfile(t, db, "in_review")

	first, err := uc.Execute(ctx, profile.ID)
	require.NoError(t, err)
	require.NotZero(t, first.ID)
	require.Equal(t, profile.ID, first.BusinessProfileID)
	require.Equal(t, 0, first.CompletionPercent())

	second, err := uc.Execute(ctx, profile.ID)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	var count int64
	db.Model(&models.VerificationChecklist{}).Count(&count)
	require.Equal(t, int64(1), count)
}

func TestGetOrCreateChecklist_UnknownProfile(t *testing.T) {
	db := newTestDB(t)
	uc := NewGetOrCreateChecklist(infraRepo.NewVerificationGormRepository(db))

	_, err := uc.Execute(context.Background(), 9999)
	require.True(t, httperr.IsBusiness(err, "profile_not_found"))
}

// --------- SetChecklistItem ---------

func TestSetChecklistItem_WritesMetadataTriple(t *testing.T) {
	db := newTestDB(t)
	repo := infraRepo.NewVerificationGormRepository(db)
	uc := NewSetChecklistItem(repo, newDispatcher(db))
	ctx := context.Background()

	profile := seedProfile(t, db, "in_review")
	cl, err := NewGetOrCreateChecklist(repo).Execute(ctx, profile.ID)
	require.NoError(t, err)

	name := "Glow Studio (Pty) Ltd"
	updated, err := uc.Execute(ctx, SetChecklistItemInput{
		ChecklistID:          cl.ID,
		Item:                 domain.ItemPaystackCodeAdded,
		Value:                true,
		ReviewerID:           77,
		PaystackBusinessName: &name,
	})
	require.NoError(t, err)
	require.True(t, updated.PaystackCodeAdded)
	require.Equal(t, uint(77), *updated.PaystackCodeVerifiedBy)
	require.NotNil(t, updated.PaystackCodeVerifiedAt)
	require.Equal(t, name, updated.PaystackBusinessName)

	// Unsetting clears the whole triple, also in the database.
	updated, err = uc.Execute(ctx, SetChecklistItemInput{
		ChecklistID: cl.ID,
		Item:        domain.ItemPaystackCodeAdded,
		Value:       false,
		ReviewerID:  77,
	})
	require.NoError(t, err)

	var stored models.VerificationChecklist
	require.NoError(t, db.First(&stored, cl.ID).Error)
	require.False(t, stored.PaystackCodeAdded)
	require.Nil(t, stored.PaystackCodeVerifiedBy)
	require.Nil(t, stored.PaystackCodeVerifiedAt)
}

func TestSetChecklistItem_UnknownChecklist(t *testing.T) {
	db := newTestDB(t)
	uc := NewSetChecklistItem(infraRepo.NewVerificationGormRepository(db), newDispatcher(db))

	_, err := uc.Execute(context.Background(), SetChecklistItemInput{
		ChecklistID: 404,
		Item:        domain.ItemDocumentsUploaded,
		Value:       true,
		ReviewerID:  1,
	})
	require.True(t, httperr.IsBusiness(err, "checklist_not_found"))
}

// --------- GrantFinalApproval ---------

func completeChecklist(t *testing.T, db *gorm.DB, repo domain.Repository, profileID uint) *models.VerificationChecklist {
	t.Helper()
	ctx := context.Background()

	cl, err := NewGetOrCreateChecklist(repo).Execute(ctx, profileID)
	require.NoError(t, err)

	setItem := NewSetChecklistItem(repo, newDispatcher(db))
	for _, item := range []domain.Item{
		domain.ItemDocumentsUploaded,
		domain.ItemPaystackCodeAdded,
		domain.ItemPaystackBusinessVerified,
	} {
		_, err := setItem.Execute(ctx, SetChecklistItemInput{
			ChecklistID: cl.ID,
			Item:        item,
			Value:       true,
			ReviewerID:  1,
		})
		require.NoError(t, err)
	}
	return cl
}

func TestGrantFinalApproval_RejectedWhenPrerequisitesOpen(t *testing.T) {
	db := newTestDB(t)
	repo := infraRepo.NewVerificationGormRepository(db)
	notifier := &fakeNotifier{}
	uc := NewGrantFinalApproval(repo, notifier, newDispatcher(db))
	ctx := context.Background()

	profile := seedProfile(t, db, "in_review")
	cl, err := NewGetOrCreateChecklist(repo).Execute(ctx, profile.ID)
	require.NoError(t, err)

	_, err = uc.Execute(ctx, cl.ID, 9)
	require.True(t, httperr.IsBusiness(err, "requirements_not_met"))

	// Neither the checklist nor the profile changed, and nobody got mail.
	var stored models.VerificationChecklist
	require.NoError(t, db.First(&stored, cl.ID).Error)
	require.False(t, stored.FinalApproval)

	var storedProfile models.BusinessProfile
	require.NoError(t, db.First(&storedProfile, profile.ID).Error)
	require.Equal(t, "in_review", storedProfile.VerificationStatus)
	require.Empty(t, notifier.calls)
}

func TestGrantFinalApproval_ApprovesProfileAndNotifies(t *testing.T) {
	db := newTestDB(t)
	repo := infraRepo.NewVerificationGormRepository(db)
	notifier := &fakeNotifier{}
	uc := NewGrantFinalApproval(repo, notifier, newDispatcher(db))
	ctx := context.Background()

	profile := seedProfile(t, db, "in_review")
	cl := completeChecklist(t, db, repo, profile.ID)

	out, err := uc.Execute(ctx, cl.ID, 9)
	require.NoError(t, err)
	require.True(t, out.NotificationSent)
	require.True(t, out.Checklist.FinalApproval)
	require.Equal(t, uint(9), *out.Checklist.FinalApprovedBy)

	var storedProfile models.BusinessProfile
	require.NoError(t, db.First(&storedProfile, profile.ID).Error)
	require.Equal(t, "approved", storedProfile.VerificationStatus)
	require.NotNil(t, storedProfile.ApprovedAt)

	require.Equal(t, []domain.Status{domain.StatusApproved}, notifier.calls)
}

func TestGrantFinalApproval_DeliveryFailureKeepsApproval(t *testing.T) {
	db := newTestDB(t)
	repo := infraRepo.NewVerificationGormRepository(db)
	notifier := &fakeNotifier{err: errors.New("smtp down")}
	uc := NewGrantFinalApproval(repo, notifier, newDispatcher(db))
	ctx := context.Background()

	profile := seedProfile(t, db, "in_review")
	cl := completeChecklist(t, db, repo, profile.ID)

	out, err := uc.Execute(ctx, cl.ID, 9)
	require.NoError(t, err, "a failed email never undoes the approval")
	require.False(t, out.NotificationSent)

	var storedProfile models.BusinessProfile
	require.NoError(t, db.First(&storedProfile, profile.ID).Error)
	require.Equal(t, "approved", storedProfile.VerificationStatus)
}

// --------- SetProfileStatus ---------

func TestSetProfileStatus_InReviewStampsSubmittedAt(t *testing.T) {
	db := newTestDB(t)
	repo := infraRepo.NewVerificationGormRepository(db)
	notifier := &fakeNotifier{}
	uc := NewSetProfileStatus(repo, notifier, newDispatcher(db))

	profile := seedProfile(t, db, "pending")

	out, err := uc.Execute(context.Background(), SetProfileStatusInput{
		ProfileID:  profile.ID,
		Status:     domain.StatusInReview,
		ReviewerID: 3,
	})
	require.NoError(t, err)
	require.Equal(t, "in_review", out.Profile.VerificationStatus)
	require.NotNil(t, out.Profile.SubmittedAt)
	require.Nil(t, out.Profile.ApprovedAt)
	require.Equal(t, []domain.Status{domain.StatusInReview}, notifier.calls)
}

func TestSetProfileStatus_DirectApproveOverride(t *testing.T) {
	db := newTestDB(t)
	repo := infraRepo.NewVerificationGormRepository(db)
	uc := NewSetProfileStatus(repo, &fakeNotifier{}, newDispatcher(db))

	// Straight from pending, with no checklist at all.
	profile := seedProfile(t, db, "pending")

	out, err := uc.Execute(context.Background(), SetProfileStatusInput{
		ProfileID:  profile.ID,
		Status:     domain.StatusApproved,
		ReviewerID: 3,
	})
	require.NoError(t, err)
	require.Equal(t, "approved", out.Profile.VerificationStatus)
	require.NotNil(t, out.Profile.ApprovedAt)
}

func TestSetProfileStatus_InvalidStatus(t *testing.T) {
	db := newTestDB(t)
	uc := NewSetProfileStatus(infraRepo.NewVerificationGormRepository(db), &fakeNotifier{}, newDispatcher(db))

	_, err := uc.Execute(context.Background(), SetProfileStatusInput{
		ProfileID: 1,
		Status:    domain.Status("live"),
	})
	require.True(t, httperr.IsBusiness(err, "invalid_status"))
}
