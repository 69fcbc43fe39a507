package validators

import "regexp"

// Paystack subaccount codes look like ACCT_8f4s1eq7ml6rlzj.
var subaccountPattern = regexp.MustCompile(`^ACCT_[A-Za-z0-9]+$`)

func IsSubaccountCode(code string) bool {
	return subaccountPattern.MatchString(code)
}
