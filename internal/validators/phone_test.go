package validators

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsE164(t *testing.T) {
	require.True(t, IsE164("+27115550100"))
	require.True(t, IsE164("+14155552671"))

	require.False(t, IsE164("0115550100"), "local numbers are not E.164")
	require.False(t, IsE164("+0115550100"), "leading zero after +")
	require.False(t, IsE164("27115550100"), "missing +")
	require.False(t, IsE164("+27 11 555 0100"), "spaces")
	require.False(t, IsE164(""))
}

func TestIsValidPhone(t *testing.T) {
	require.True(t, IsValidPhone("+27115550100"))
	require.True(t, IsValidPhone("0115550100"))

	require.False(t, IsValidPhone("011555010"), "ZA local needs 10 digits")
	require.False(t, IsValidPhone("1234567890"))
}

func TestNormalizeZA(t *testing.T) {
	got, ok := NormalizeZA("0115550100")
	require.True(t, ok)
	require.Equal(t, "+27115550100", got)

	got, ok = NormalizeZA("+27115550100")
	require.True(t, ok)
	require.Equal(t, "+27115550100", got, "E.164 passes through untouched")

	got, ok = NormalizeZA("not-a-number")
	require.False(t, ok)
	require.Equal(t, "not-a-number", got)
}
