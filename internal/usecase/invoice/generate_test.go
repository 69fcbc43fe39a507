package invoice

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	dbpkg "github.com/glowbook/salon-api/internal/db"
	domain "github.com/glowbook/salon-api/internal/domain/invoice"
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

type fixture struct {
	salon       *models.BusinessProfile
	hairdresser *models.User
	service     *models.SalonService
}

func seedFixture(t *testing.T, db *gorm.DB) fixture {
	t.Helper()

	salon := &models.BusinessProfile{
		BusinessName:       "Glow Studio",
		Slug:               fmt.Sprintf("glow-%d", time.Now().UnixNano()),
		VerificationStatus: "approved",
	}
	require.NoError(t, db.Create(salon).Error)

	hairdresser := &models.User{
		BusinessProfileID: &salon.ID,
		Name:              "Thandi M",
		Email:             fmt.Sprintf("thandi-%d@glow.test", time.Now().UnixNano()),
		PasswordHash:      "x",
		Role:              models.RoleStylist,
		CommissionRate:    15,
	}
	require.NoError(t, db.Create(hairdresser).Error)

	service := &models.SalonService{
		BusinessProfileID: salon.ID,
		Name:              "Cut & Style",
		DurationMin:       45,
		Price:             100,
		Active:            true,
	}
	require.NoError(t, db.Create(service).Error)

	return fixture{salon: salon, hairdresser: hairdresser, service: service}
}

func seedCompletedBooking(t *testing.T, db *gorm.DB, fx fixture, completedAt time.Time, cost, rate float64) *models.Booking {
	t.Helper()
	b := &models.Booking{
		BusinessProfileID: fx.salon.ID,
		HairdresserID:     fx.hairdresser.ID,
		CustomerID:        fx.hairdresser.ID, // any user row works for the FK
		ServiceID:         fx.service.ID,
		StartTime:         completedAt.Add(-time.Hour),
		EndTime:           completedAt,
		Status:            models.BookingCompleted,
		ServiceCost:       cost,
		CommissionRate:    rate,
		CompletedAt:       &completedAt,
	}
	require.NoError(t, db.Create(b).Error)
	return b
}

func TestGenerateInvoice_Arithmetic(t *testing.T) {
	db := newTestDB(t)
	fx := seedFixture(t, db)
	uc := NewGenerateInvoice(infraRepo.NewInvoiceGormRepository(db))

	// Three R100 completed bookings at 15% in March 2026.
	base := time.Date(2026, time.March, 10, 14, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		seedCompletedBooking(t, db, fx, base.AddDate(0, 0, i), 100, 15)
	}

	inv, err := uc.Execute(context.Background(), fx.hairdresser.ID, 3, 2026)
	require.NoError(t, err)

	require.Equal(t, 3, inv.Summary.TotalBookings)
	require.Equal(t, "300.00", inv.Summary.TotalRevenue)
	require.Equal(t, 15.0, inv.Summary.CommissionRate)
	require.Equal(t, "45.00", inv.Summary.TotalCommission)
	require.Len(t, inv.Items, 3)
	for _, item := range inv.Items {
		require.Equal(t, "Cut & Style", item.ServiceName)
		require.Equal(t, 15.0, item.CommissionAmount)
	}

	require.Equal(t, domain.Number(fx.hairdresser.PublicID, 3, 2026), inv.Summary.InvoiceNumber)
}

func TestGenerateInvoice_Deterministic(t *testing.T) {
	db := newTestDB(t)
	fx := seedFixture(t, db)
	uc := NewGenerateInvoice(infraRepo.NewInvoiceGormRepository(db))

	seedCompletedBooking(t, db, fx, time.Date(2026, time.March, 5, 9, 0, 0, 0, time.UTC), 250, 20)

	first, err := uc.Execute(context.Background(), fx.hairdresser.ID, 3, 2026)
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), fx.hairdresser.ID, 3, 2026)
	require.NoError(t, err)

	require.Equal(t, first, second, "generation writes nothing, so replays match")
}

func TestGenerateInvoice_SummaryRateFromFirstRow(t *testing.T) {
	db := newTestDB(t)
	fx := seedFixture(t, db)
	uc := NewGenerateInvoice(infraRepo.NewInvoiceGormRepository(db))

	// Rate changed mid-month: older booking at 10%, newer at 20%.
	seedCompletedBooking(t, db, fx, time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC), 100, 10)
	seedCompletedBooking(t, db, fx, time.Date(2026, time.March, 20, 9, 0, 0, 0, time.UTC), 100, 20)

	inv, err := uc.Execute(context.Background(), fx.hairdresser.ID, 3, 2026)
	require.NoError(t, err)

	// Header shows the earliest row's rate; line items keep their own.
	require.Equal(t, 10.0, inv.Summary.CommissionRate)
	require.Equal(t, "30.00", inv.Summary.TotalCommission)
	require.Equal(t, 10.0, inv.Items[0].CommissionRate)
	require.Equal(t, 20.0, inv.Items[1].CommissionRate)
}

func TestGenerateInvoice_ExcludesOtherMonthsAndStatuses(t *testing.T) {
	db := newTestDB(t)
	fx := seedFixture(t, db)
	uc := NewGenerateInvoice(infraRepo.NewInvoiceGormRepository(db))

	seedCompletedBooking(t, db, fx, time.Date(2026, time.March, 15, 9, 0, 0, 0, time.UTC), 100, 15)
	seedCompletedBooking(t, db, fx, time.Date(2026, time.April, 1, 9, 0, 0, 0, time.UTC), 100, 15)

	// A scheduled booking in March never counts.
	scheduled := seedCompletedBooking(t, db, fx, time.Date(2026, time.March, 16, 9, 0, 0, 0, time.UTC), 100, 15)
	require.NoError(t, db.Model(scheduled).Updates(map[string]any{"status": models.BookingScheduled, "completed_at": nil}).Error)

	inv, err := uc.Execute(context.Background(), fx.hairdresser.ID, 3, 2026)
	require.NoError(t, err)
	require.Equal(t, 1, inv.Summary.TotalBookings)
	require.Equal(t, "100.00", inv.Summary.TotalRevenue)
}

func TestGenerateInvoice_NoData(t *testing.T) {
	db := newTestDB(t)
	fx := seedFixture(t, db)
	uc := NewGenerateInvoice(infraRepo.NewInvoiceGormRepository(db))

	_, err := uc.Execute(context.Background(), fx.hairdresser.ID, 3, 2026)
	require.True(t, httperr.IsBusiness(err, "no_data_found"))
}

func TestGenerateInvoice_Validation(t *testing.T) {
	db := newTestDB(t)
	uc := NewGenerateInvoice(infraRepo.NewInvoiceGormRepository(db))
	ctx := context.Background()

	_, err := uc.Execute(ctx, 1, 0, 2026)
	require.True(t, httperr.IsBusiness(err, "invalid_month"))

	_, err = uc.Execute(ctx, 1, 13, 2026)
	require.True(t, httperr.IsBusiness(err, "invalid_month"))

	_, err = uc.Execute(ctx, 1, 3, 1999)
	require.True(t, httperr.IsBusiness(err, "invalid_year"))

	_, err = uc.Execute(ctx, 404, 3, 2026)
	require.True(t, httperr.IsBusiness(err, "hairdresser_not_found"))
}
