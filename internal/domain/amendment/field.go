package amendment

import (
	"github.com/glowbook/salon-api/internal/httperr"
	"github.com/glowbook/salon-api/internal/models"
)

// Field names one amendable column of a business profile. The set is closed:
// applying an amendment goes through the typed switch below, never through a
// runtime column-name lookup.
type Field string

const (
	FieldBusinessName  Field = "business_name"
	FieldBusinessEmail Field = "business_email"
	FieldPhone         Field = "phone"
	FieldAddress       Field = "address"
	FieldCity          Field = "city"
)

func ParseField(raw string) (Field, bool) {
	switch Field(raw) {
	case FieldBusinessName, FieldBusinessEmail, FieldPhone, FieldAddress, FieldCity:
		return Field(raw), true
	}
	return "", false
}

// CurrentValue reads the present value of the field on the profile.
func CurrentValue(p *models.BusinessProfile, f Field) string {
	switch f {
	case FieldBusinessName:
		return p.BusinessName
	case FieldBusinessEmail:
		return p.BusinessEmail
	case FieldPhone:
		return p.Phone
	case FieldAddress:
		return p.Address
	case FieldCity:
		return p.City
	}
	return ""
}

// Apply writes the new value into the named field.
func Apply(p *models.BusinessProfile, f Field, newValue string) error {
	switch f {
	case FieldBusinessName:
		p.BusinessName = newValue
	case FieldBusinessEmail:
		p.BusinessEmail = newValue
	case FieldPhone:
		p.Phone = newValue
	case FieldAddress:
		p.Address = newValue
	case FieldCity:
		p.City = newValue
	default:
		return httperr.ErrBusiness("invalid_amendment_field")
	}
	return nil
}
