package notify

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	dbpkg "github.com/glowbook/salon-api/internal/db"
	"github.com/glowbook/salon-api/internal/domain/verification"
	"github.com/glowbook/salon-api/internal/mailer"
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

type fakeSender struct {
	sent []mailer.Email
	err  error
}

func (f *fakeSender) Send(ctx context.Context, email mailer.Email) error {
	f.sent = append(f.sent, email)
	return f.err
}

func seedProfile(t *testing.T, db *gorm.DB, businessEmail string) *models.BusinessProfile {
	t.Helper()
	profile := &models.BusinessProfile{
		BusinessName:       "Glow Studio",
		Slug:               fmt.Sprintf("glow-%d", time.Now().UnixNano()),
		BusinessEmail:      businessEmail,
		VerificationStatus: "in_review",
	}
	require.NoError(t, db.Create(profile).Error)
	return profile
}

func emailLogs(t *testing.T, db *gorm.DB, profileID uint) []models.VerificationEmailLog {
	t.Helper()
	var logs []models.VerificationEmailLog
	require.NoError(t, db.Where("business_profile_id = ?", profileID).Find(&logs).Error)
	return logs
}

func TestNotifyStatusChange_SuccessLogsAttempt(t *testing.T) {
	db := newTestDB(t)
	sender := &fakeSender{}
	d := NewDispatcher(db, sender)

	profile := seedProfile(t, db, "owner@glow.test")

	err := d.NotifyStatusChange(context.Background(), profile, verification.StatusApproved, "welcome aboard")
	require.NoError(t, err)

	require.Len(t, sender.sent, 1)
	require.Equal(t, "owner@glow.test", sender.sent[0].To)
	require.Contains(t, sender.sent[0].Subject, "approved")
	require.Contains(t, sender.sent[0].HTML, "Glow Studio")
	require.Contains(t, sender.sent[0].HTML, "welcome aboard")

	logs := emailLogs(t, db, profile.ID)
	require.Len(t, logs, 1)
	require.True(t, logs[0].Sent)
	require.Equal(t, "approved", logs[0].Status)
	require.Empty(t, logs[0].ErrorMessage)
}

func TestNotifyStatusChange_FailureStillLogsAttempt(t *testing.T) {
	db := newTestDB(t)
	sender := &fakeSender{err: errors.New("provider 503")}
	d := NewDispatcher(db, sender)

	profile := seedProfile(t, db, "owner@glow.test")

	err := d.NotifyStatusChange(context.Background(), profile, verification.StatusRejected, "missing documents")
	require.ErrorIs(t, err, ErrDeliveryFailed)

	// The attempt is on record regardless of delivery.
	logs := emailLogs(t, db, profile.ID)
	require.Len(t, logs, 1)
	require.False(t, logs[0].Sent)
	require.Contains(t, logs[0].ErrorMessage, "provider 503")
	require.Equal(t, "rejected", logs[0].Status)
	require.NotEmpty(t, logs[0].Body)
}

func TestNotifyStatusChange_FallsBackToOwnerEmail(t *testing.T) {
	db := newTestDB(t)
	sender := &fakeSender{}
	d := NewDispatcher(db, sender)

	profile := seedProfile(t, db, "")
	owner := &models.User{
		BusinessProfileID: &profile.ID,
		Name:              "Lerato",
		Email:             fmt.Sprintf("lerato-%d@glow.test", time.Now().UnixNano()),
		PasswordHash:      "x",
		Role:              models.RoleOwner,
	}
	require.NoError(t, db.Create(owner).Error)

	require.NoError(t, d.NotifyStatusChange(context.Background(), profile, verification.StatusInReview, ""))
	require.Len(t, sender.sent, 1)
	require.Equal(t, owner.Email, sender.sent[0].To)
}

func TestNotifyStatusChange_NoRecipientLogsAndFails(t *testing.T) {
	db := newTestDB(t)
	sender := &fakeSender{}
	d := NewDispatcher(db, sender)

	// No business email, no owner account.
	profile := seedProfile(t, db, "")

	err := d.NotifyStatusChange(context.Background(), profile, verification.StatusInReview, "")
	require.ErrorIs(t, err, ErrDeliveryFailed)
	require.Empty(t, sender.sent)

	logs := emailLogs(t, db, profile.ID)
	require.Len(t, logs, 1)
	require.False(t, logs[0].Sent)
	require.Empty(t, logs[0].Recipient)
}

func TestRenderTemplates(t *testing.T) {
	for _, status := range []verification.Status{
		verification.StatusPending,
		verification.StatusInReview,
		verification.StatusApproved,
		verification.StatusRejected,
	} {
		subject, body, ok := render(status, "Glow Studio", "note")
		require.True(t, ok, string(status))
		require.NotEmpty(t, subject)
		require.Contains(t, body, "Glow Studio")
	}

	_, _, ok := render(verification.Status("live"), "x", "")
	require.False(t, ok)
}
