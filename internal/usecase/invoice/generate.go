package invoice

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/glowbook/salon-api/internal/domain/invoice"
	"github.com/glowbook/salon-api/internal/httperr"
	"github.com/glowbook/salon-api/internal/timezone"
)

// ======================================================
// USE CASE — GENERATE COMMISSION INVOICE
// ======================================================

// GenerateInvoice is a pure read: it aggregates the hairdresser's completed
// bookings for one month and computes the commission summary. Nothing is
// persisted, so the same period always reproduces the same invoice.
type GenerateInvoice struct {
	repo domain.Repository
}

func NewGenerateInvoice(repo domain.Repository) *GenerateInvoice {
	return &GenerateInvoice{repo: repo}
}

func (uc *GenerateInvoice) Execute(
	ctx context.Context,
	hairdresserID uint,
	month int,
	year int,
) (*domain.Invoice, error) {

	if month < 1 || month > 12 {
		return nil, httperr.ErrBusiness("invalid_month")
	}
	if year < 2000 || year > 2100 {
		return nil, httperr.ErrBusiness("invalid_year")
	}

	hairdresser, err := uc.repo.GetHairdresser(ctx, hairdresserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("hairdresser_not_found")
		}
		return nil, err
	}

	loc := timezone.Location("")
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	bookings, err := uc.repo.ListCompletedBookings(ctx, hairdresserID, start, end)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, httperr.ErrBusiness("no_data_found")
	}

	items := make([]domain.LineItem, 0, len(bookings))

	var totalRevenue float64
	var totalCommission float64

	for _, b := range bookings {
		raw := b.ServiceCost * b.CommissionRate / 100

		date := b.StartTime
		if b.CompletedAt != nil {
			date = *b.CompletedAt
		}

		items = append(items, domain.LineItem{
			BookingID:        b.ID,
			Date:             date,
			ServiceName:      b.Service.Name,
			ServiceCost:      b.ServiceCost,
			CommissionRate:   b.CommissionRate,
			CommissionAmount: domain.Round2(raw),
		})

		totalRevenue += b.ServiceCost
		totalCommission += raw
	}

	// The summary rate is taken from the first row of the period; line
	// items keep their own rates even when they differ.
	summaryRate := bookings[0].CommissionRate

	return &domain.Invoice{
		Summary: domain.Summary{
			InvoiceNumber:   domain.Number(hairdresser.PublicID, month, year),
			HairdresserID:   hairdresser.ID,
			Hairdresser:     hairdresser.Name,
			Month:           month,
			Year:            year,
			TotalBookings:   len(bookings),
			TotalRevenue:    domain.FormatAmount(totalRevenue),
			CommissionRate:  summaryRate,
			TotalCommission: domain.FormatAmount(totalCommission),
		},
		Items: items,
	}, nil
}
