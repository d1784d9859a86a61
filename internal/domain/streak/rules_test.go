package streak

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/flowva/rewards-api/internal/domain/ledger"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCanClaimToday(t *testing.T) {
	today := day(2026, 3, 10)
	require.True(t, CanClaimToday(State{}, today))

	last := day(2026, 3, 9)
	require.True(t, CanClaimToday(State{CurrentStreak: 3, LastClaimedDate: &last}, today))

	// a DATE scanned with a zero-offset fixed zone is still the same day
	sameDay := time.Date(2026, 3, 10, 0, 0, 0, 0, time.FixedZone("", 0))
	require.False(t, CanClaimToday(State{CurrentStreak: 3, LastClaimedDate: &sameDay}, today))
}

func TestClaimSequence(t *testing.T) {
	state := State{}

	state, points, err := Claim(state, day(2026, 3, 1))
	require.NoError(t, err)
	require.Equal(t, 5, points)
	require.Equal(t, 1, state.CurrentStreak)

	state, _, err = Claim(state, day(2026, 3, 2))
	require.NoError(t, err)
	require.Equal(t, 2, state.CurrentStreak)

	// gap of one day resets
	state, _, err = Claim(state, day(2026, 3, 4))
	require.NoError(t, err)
	require.Equal(t, 1, state.CurrentStreak)
	require.True(t, state.LastClaimedDate.Equal(day(2026, 3, 4)))
}

func TestClaimAcrossMonthBoundary(t *testing.T) {
	last := day(2026, 2, 28)
	next, _, err := Claim(State{CurrentStreak: 6, LastClaimedDate: &last}, day(2026, 3, 1))
	require.NoError(t, err)
	require.Equal(t, 7, next.CurrentStreak)
}

func TestClaimSameDayFailsAndLeavesStateUnchanged(t *testing.T) {
	last := day(2026, 3, 10)
	state := State{CurrentStreak: 4, LastClaimedDate: &last}

	got, points, err := Claim(state, day(2026, 3, 10))
	require.ErrorIs(t, err, ledger.ErrAlreadyClaimed)
	require.Zero(t, points)
	require.Equal(t, state, got)
	require.Equal(t, 4, state.CurrentStreak)
}

func TestClaimEarlierDateFails(t *testing.T) {
	last := day(2026, 3, 11)
	state := State{CurrentStreak: 2, LastClaimedDate: &last}

	require.False(t, CanClaimToday(state, day(2026, 3, 9)))
	_, points, err := Claim(state, day(2026, 3, 9))
	require.ErrorIs(t, err, ledger.ErrAlreadyClaimed)
	require.Zero(t, points)
}

func TestClaimNormalizesTimeOfDay(t *testing.T) {
	next, _, err := Claim(State{}, time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC))
	require.NoError(t, err)
	require.True(t, next.LastClaimedDate.Equal(day(2026, 3, 10)))
}

func TestDescriptionAndWeekday(t *testing.T) {
	require.Equal(t, "Daily streak bonus - Day 3", Description(3))
	require.Equal(t, 0, WeekdayIndex(day(2026, 3, 9)))  // Monday
	require.Equal(t, 6, WeekdayIndex(day(2026, 3, 15))) // Sunday
}
