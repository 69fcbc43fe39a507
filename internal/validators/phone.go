package validators

import "regexp"

// E.164 with a leading +, 8-15 digits. SMS delivery requires this shape.
var e164Pattern = regexp.MustCompile(`^\+[1-9]\d{7,14}$`)

// South African local numbers: 0 followed by 9 digits.
var zaLocalPattern = regexp.MustCompile(`^0\d{9}$`)

func IsE164(phone string) bool {
	return e164Pattern.MatchString(phone)
}

// IsValidPhone accepts E.164 or a ZA local number.
func IsValidPhone(phone string) bool {
	return e164Pattern.MatchString(phone) || zaLocalPattern.MatchString(phone)
}

// NormalizeZA rewrites a ZA local number to E.164. Anything already in
// E.164 passes through; everything else comes back unchanged with ok=false.
func NormalizeZA(phone string) (string, bool) {
	if e164Pattern.MatchString(phone) {
		return phone, true
	}
	if zaLocalPattern.MatchString(phone) {
		return "+27" + phone[1:], true
	}
	return phone, false
}
