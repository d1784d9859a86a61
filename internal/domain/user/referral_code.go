package user

import (
	"math/rand/v2"
	"strconv"
	"strings"
)

const (
	referralPrefixLen = 6
	referralSuffixMax = 10000
)

// ReferralCode builds a code from the first six letters or digits of the
// e-mail's local part, lowercased, followed by suffix.
func ReferralCode(email string, suffix int) string {
	local := email
	if i := strings.IndexByte(email, '@'); i >= 0 {
		local = email[:i]
	}

	var b strings.Builder
	for _, r := range strings.ToLower(local) {
		if b.Len() == referralPrefixLen {
			break
		}
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		b.WriteString("user")
	}

	return b.String() + strconv.Itoa(suffix)
}

// NewReferralCode returns ReferralCode with a random suffix below 10000.
func NewReferralCode(email string) string {
	return ReferralCode(email, rand.IntN(referralSuffixMax))
}
