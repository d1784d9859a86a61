package streak

import (
	"time"

	"github.com/google/uuid"
)

// PointsPerClaim is awarded for every successful daily check-in.
const PointsPerClaim = 5

// State is a user's daily streak record. LastClaimedDate is a calendar date
// (midnight UTC) or nil when the user has never claimed.
type State struct {
	UserID          uuid.UUID  `db:"user_id" json:"-"`
	CurrentStreak   int        `db:"current_streak" json:"current_streak"`
	LastClaimedDate *time.Time `db:"last_claimed_date" json:"last_claimed_date"`
}

// Status is the streak card returned by GET /streak
type Status struct {
	CurrentStreak   int     `json:"current_streak"`
	LastClaimedDate *string `json:"last_claimed_date"`
	CanClaimToday   bool    `json:"can_claim_today"`
	Today           string  `json:"today"`
	WeekdayIndex    int     `json:"weekday_index"`
}

// ClaimResult is returned by POST /streak/claim
type ClaimResult struct {
	CurrentStreak   int    `json:"current_streak"`
	PointsAwarded   int    `json:"points_awarded"`
	LastClaimedDate string `json:"last_claimed_date"`
}

const dateLayout = "2006-01-02"

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}
