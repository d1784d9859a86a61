package referral

import "errors"

var (
	// ErrDuplicateReferral is returned when the referrer already earned for this user
	ErrDuplicateReferral = errors.New("referral already recorded")
)
