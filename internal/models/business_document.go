package models

import "time"

const (
	DocumentKindIdentity       = "id_document"
	DocumentKindRegistration   = "registration"
	DocumentKindProofOfAddress = "proof_of_address"
)

// BusinessDocument is an uploaded identity/registration file held in the
// object store; the checklist reviewer works from these.
type BusinessDocument struct {
	ID                uint `gorm:"primaryKey" json:"id"`
	BusinessProfileID uint `gorm:"index;not null" json:"business_profile_id"`

	Kind        string `gorm:"size:30;not null" json:"kind"`
	FileName    string `gorm:"size:255;not null" json:"file_name"`
	StorageKey  string `gorm:"size:255;not null" json:"storage_key"`
	ContentType string `gorm:"size:100" json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`

	UploadedBy uint `json:"uploaded_by"`

	CreatedAt time.Time `json:"created_at"`
}
