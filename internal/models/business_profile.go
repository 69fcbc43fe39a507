package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BusinessProfile is the salon-owner account record. Never hard-deleted:
// rejected businesses stay around and may resubmit.
type BusinessProfile struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	PublicID uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"public_id"`

	BusinessName string `gorm:"size:100;not null" json:"business_name"`
	Slug         string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Description  string `gorm:"size:500" json:"description"`

	BusinessEmail string `gorm:"size:100" json:"business_email"`
	Phone         string `gorm:"size:20" json:"phone"`
	Address       string `gorm:"size:255" json:"address"`
	City          string `gorm:"size:100" json:"city"`
	Timezone      string `gorm:"size:50" json:"timezone"`

	AvatarURL string `gorm:"size:255" json:"avatar_url"`
	BannerURL string `gorm:"size:255" json:"banner_url"`

	// pending | in_review | approved | rejected
	VerificationStatus string `gorm:"size:20;default:'pending'" json:"verification_status"`

	SubmittedAt *time.Time `json:"submitted_at"`
	ApprovedAt  *time.Time `json:"approved_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *BusinessProfile) BeforeCreate(tx *gorm.DB) error {
	if b.PublicID == uuid.Nil {
		b.PublicID = uuid.New()
	}
	return nil
}
