package streak

import (
	"fmt"
	"time"

	"github.com/flowva/rewards-api/internal/domain/ledger"
	"github.com/flowva/rewards-api/internal/pkg/clock"
)

// CanClaimToday reports whether today is later than the last claimed date.
// A date on or before the last claim never qualifies, whatever zone produced it.
func CanClaimToday(state State, today time.Time) bool {
	if state.LastClaimedDate == nil {
		return true
	}
	return clock.Date(today).After(clock.Date(*state.LastClaimedDate))
}

// Claim advances the streak for today. A claim on the day after the last one
// extends the streak; any other gap restarts it at 1. The input is not modified.
func Claim(state State, today time.Time) (State, int, error) {
	today = clock.Date(today)
	if !CanClaimToday(state, today) {
		return state, 0, ledger.ErrAlreadyClaimed
	}

	next := state
	next.CurrentStreak = 1
	if state.LastClaimedDate != nil && clock.Date(*state.LastClaimedDate).Equal(today.AddDate(0, 0, -1)) {
		next.CurrentStreak = state.CurrentStreak + 1
	}
	next.LastClaimedDate = &today

	return next, PointsPerClaim, nil
}

// Description is the ledger text for a claim that reaches day n.
func Description(n int) string {
	return fmt.Sprintf("Daily streak bonus - Day %d", n)
}

// WeekdayIndex returns today's position in a Monday-first week (0..6).
func WeekdayIndex(today time.Time) int {
	return (int(today.Weekday()) + 6) % 7
}
