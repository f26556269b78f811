// Package privacy provides PII masking helpers used when rendering audit
// records and session listings.
package privacy

import "strings"

// Mask hides the middle of a string, keeping visibleChars at each end.
// Strings too short to mask are returned unchanged.
func Mask(data string, visibleChars int) string {
	if data == "" || len(data) <= visibleChars*2 {
		return data
	}

	return data[:visibleChars] +
		strings.Repeat("*", len(data)-visibleChars*2) +
		data[len(data)-visibleChars:]
}

// MaskEmail masks the local part of an address, keeping the first three
// characters and the full domain: "user@example.com" -> "use***@example.com".
// Local parts of three characters or fewer are kept as is, so masking an
// already-masked address never removes further visible characters.
func MaskEmail(email string) string {
	if email == "" || !strings.Contains(email, "@") {
		return email
	}

	at := strings.Index(email, "@")
	local, domain := email[:at], email[at+1:]

	if len(local) > 3 {
		local = local[:3] + "***"
	}

	return local + "@" + domain
}

// MaskPhone keeps only the last four digits: "9876543210" -> "******3210".
func MaskPhone(phone string) string {
	if phone == "" || len(phone) < 4 {
		return phone
	}

	return strings.Repeat("*", len(phone)-4) + phone[len(phone)-4:]
}
