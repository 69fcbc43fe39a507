package models

import "time"

// VerificationEmailLog is an append-only audit trail of notification attempts.
// One row per attempt, success or not. Never updated or deleted.
type VerificationEmailLog struct {
	ID                uint `gorm:"primaryKey" json:"id"`
	BusinessProfileID uint `gorm:"index;not null" json:"business_profile_id"`

	Status    string `gorm:"size:20;not null" json:"status"`
	Recipient string `gorm:"size:100;not null" json:"recipient"`
	Subject   string `gorm:"size:255" json:"subject"`
	Body      string `gorm:"type:text" json:"body"`

	Sent         bool   `json:"sent"`
	ErrorMessage string `gorm:"type:text" json:"error_message"`

	CreatedAt time.Time `json:"created_at"`
}
