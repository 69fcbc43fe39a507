package invoice

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Summary is the header of a generated commission invoice. Monetary totals
// are formatted to two decimals at output time; the commission rate comes
// from the first booking row of the period.
type Summary struct {
	InvoiceNumber   string  `json:"invoice_number"`
	HairdresserID   uint    `json:"hairdresser_id"`
	Hairdresser     string  `json:"hairdresser"`
	Month           int     `json:"month"`
	Year            int     `json:"year"`
	TotalBookings   int     `json:"total_bookings"`
	TotalRevenue    string  `json:"total_revenue"`
	CommissionRate  float64 `json:"commission_rate"`
	TotalCommission string  `json:"total_commission"`
}

type LineItem struct {
	BookingID        uint      `json:"booking_id"`
	Date             time.Time `json:"date"`
	ServiceName      string    `json:"service_name"`
	ServiceCost      float64   `json:"service_cost"`
	CommissionRate   float64   `json:"commission_rate"`
	CommissionAmount float64   `json:"commission_amount"`
}

type Invoice struct {
	Summary Summary    `json:"summary"`
	Items   []LineItem `json:"items"`
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatAmount renders a monetary value as a fixed two-decimal string.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(Round2(v), 'f', 2, 64)
}

// Number derives the invoice number from the period and the hairdresser's
// public id: INV-<year><month>-<first 8 hex chars, uppercased>. No counter,
// no randomness; the same inputs always produce the same number.
func Number(hairdresser uuid.UUID, month, year int) string {
	compact := strings.ToUpper(strings.ReplaceAll(hairdresser.String(), "-", ""))
	return fmt.Sprintf("INV-%04d%02d-%s", year, month, compact[:8])
}
