package models

import "time"

// PaymentSetting holds the Paystack subaccount used to route split payments.
// A business without one cannot receive split payments.
type PaymentSetting struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	BusinessProfileID uint            `gorm:"uniqueIndex;not null" json:"business_profile_id"`
	BusinessProfile   BusinessProfile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	SubaccountCode string `gorm:"size:50;not null" json:"subaccount_code"`
	Notes          string `gorm:"type:text" json:"notes"`

	VerifiedBy *uint      `json:"verified_by"`
	VerifiedAt *time.Time `json:"verified_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
