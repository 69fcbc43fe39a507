package validators

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsSubaccountCode(t *testing.T) {
	require.True(t, IsSubaccountCode("ACCT_8f4s1eq7ml6rlzj"))
	require.True(t, IsSubaccountCode("ACCT_X1"))

	require.False(t, IsSubaccountCode("acct_8f4s1eq7ml6rlzj"), "prefix is case sensitive")
	require.False(t, IsSubaccountCode("ACCT_"))
	require.False(t, IsSubaccountCode("ACCT_abc def"))
	require.False(t, IsSubaccountCode("SUB_8f4s1eq7ml6rlzj"))
	require.False(t, IsSubaccountCode(""))
}
