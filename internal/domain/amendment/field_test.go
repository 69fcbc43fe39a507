package amendment

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/glowbook/salon-api/internal/httperr"
	"github.com/glowbook/salon-api/internal/models"
)

func TestParseField(t *testing.T) {
	for _, raw := range []string{"business_name", "business_email", "phone", "address", "city"} {
		f, ok := ParseField(raw)
		require.True(t, ok, raw)
		require.Equal(t, Field(raw), f)
	}

	_, ok := ParseField("slug")
	require.False(t, ok, "slug is not amendable")

	_, ok = ParseField("verification_status")
	require.False(t, ok, "status changes go through the verification flow")
}

func TestApplyAndCurrentValue(t *testing.T) {
	p := &models.BusinessProfile{
		BusinessName:  "Old Cuts",
		BusinessEmail: "old@salon.test",
		Phone:         "+27115550100",
		Address:       "1 Old Rd",
		City:          "Durban",
	}

	require.Equal(t, "Old Cuts", CurrentValue(p, FieldBusinessName))
	require.NoError(t, Apply(p, FieldBusinessName, "New Cuts"))
	require.Equal(t, "New Cuts", p.BusinessName)

	require.NoError(t, Apply(p, FieldCity, "Cape Town"))
	require.Equal(t, "Cape Town", CurrentValue(p, FieldCity))

	// Untouched fields stay put.
	require.Equal(t, "old@salon.test", p.BusinessEmail)
	require.Equal(t, "1 Old Rd", p.Address)
}

func TestApply_UnknownField(t *testing.T) {
	p := &models.BusinessProfile{}
	err := Apply(p, Field("slug"), "new-slug")
	require.True(t, httperr.IsBusiness(err, "invalid_amendment_field"))
}
