package auth

import "strings"

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func normalizeReferralCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// defaultDisplayName falls back to the e-mail's local part
func defaultDisplayName(name, email string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}
