package models

import "time"

const (
	AmendmentPending  = "pending"
	AmendmentApproved = "approved"
	AmendmentRejected = "rejected"
)

// AmendmentRequest is a proposed single-field change to a business profile,
// raised by an employee. Once resolved it is immutable apart from the
// reviewer metadata written in the same update.
type AmendmentRequest struct {
	ID                uint `gorm:"primaryKey" json:"id"`
	BusinessProfileID uint `gorm:"index;not null" json:"business_profile_id"`

	Field    string `gorm:"size:50;not null" json:"field"`
	OldValue string `gorm:"size:255" json:"old_value"`
	NewValue string `gorm:"size:255;not null" json:"new_value"`
	Reason   string `gorm:"size:500" json:"reason"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	RequestedBy  uint       `gorm:"not null" json:"requested_by"`
	ReviewedBy   *uint      `json:"reviewed_by"`
	ReviewedAt   *time.Time `json:"reviewed_at"`
	ReviewReason string     `gorm:"size:500" json:"review_reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
