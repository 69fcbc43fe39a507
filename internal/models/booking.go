package models

import "time"

const (
	BookingScheduled = "scheduled"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
)

const (
	PaymentUnpaid = "unpaid"
	PaymentPaid   = "paid"
	PaymentFailed = "failed"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BusinessProfileID uint            `json:"business_profile_id"`
	BusinessProfile   BusinessProfile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"business_profile"`

	HairdresserID uint `json:"hairdresser_id"`
	Hairdresser   User `gorm:"foreignKey:HairdresserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"hairdresser"`

	CustomerID uint `json:"customer_id"`
	Customer   User `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer"`

	ServiceID uint         `json:"service_id"`
	Service   SalonService `gorm:"foreignKey:ServiceID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	// Captured at completion time so invoices survive later price or
	// commission changes.
	ServiceCost    float64 `json:"service_cost"`
	CommissionRate float64 `json:"commission_rate"`

	PaymentReference string `gorm:"size:100;index" json:"payment_reference"`
	PaymentStatus    string `gorm:"size:20;default:'unpaid'" json:"payment_status"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
