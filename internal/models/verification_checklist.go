package models

import "time"

// VerificationChecklist is one-to-one with BusinessProfile, created lazily on
// first view. Each sign-off boolean travels with its reviewer metadata: when a
// flag is true its verified-by/verified-at pair is set, when false both are nil.
type VerificationChecklist struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	BusinessProfileID uint            `gorm:"uniqueIndex;not null" json:"business_profile_id"`
	BusinessProfile   BusinessProfile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	DocumentsUploaded   bool       `json:"documents_uploaded"`
	DocumentsVerifiedBy *uint      `json:"documents_verified_by"`
	DocumentsVerifiedAt *time.Time `json:"documents_verified_at"`

	PaystackCodeAdded      bool       `json:"paystack_code_added"`
	PaystackCodeVerifiedBy *uint      `json:"paystack_code_verified_by"`
	PaystackCodeVerifiedAt *time.Time `json:"paystack_code_verified_at"`

	PaystackBusinessVerified   bool       `json:"paystack_business_verified"`
	PaystackBusinessVerifiedBy *uint      `json:"paystack_business_verified_by"`
	PaystackBusinessVerifiedAt *time.Time `json:"paystack_business_verified_at"`

	FinalApproval   bool       `json:"final_approval"`
	FinalApprovedBy *uint      `json:"final_approved_by"`
	FinalApprovedAt *time.Time `json:"final_approved_at"`

	PaystackBusinessName string `gorm:"size:100" json:"paystack_business_name"`
	VerificationNotes    string `gorm:"type:text" json:"verification_notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CompletionPercent counts the four sign-off items.
func (c *VerificationChecklist) CompletionPercent() int {
	done := 0
	for _, v := range []bool{
		c.DocumentsUploaded,
		c.PaystackCodeAdded,
		c.PaystackBusinessVerified,
		c.FinalApproval,
	} {
		if v {
			done++
		}
	}
	return done * 100 / 4
}

// PrerequisitesMet reports whether final approval may be granted.
func (c *VerificationChecklist) PrerequisitesMet() bool {
	return c.DocumentsUploaded && c.PaystackCodeAdded && c.PaystackBusinessVerified
}
