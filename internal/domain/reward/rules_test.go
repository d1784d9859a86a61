package reward

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flowva/rewards-api/internal/domain/ledger"
)

func TestClassify(t *testing.T) {
	active := Reward{PointsCost: 100, Status: StatusActive}

	require.Equal(t, Unlocked, Classify(active, 100))
	require.Equal(t, Unlocked, Classify(active, 101))
	require.Equal(t, Locked, Classify(active, 99))
	require.Equal(t, Locked, Classify(active, -85))
	require.Equal(t, ComingSoon, Classify(Reward{PointsCost: 10, Status: StatusComingSoon}, 5000))
	require.Equal(t, Unlocked, Classify(Reward{PointsCost: 0, Status: StatusActive}, 0))
}

func TestRedeem(t *testing.T) {
	balance, err := Redeem(Reward{PointsCost: 100, Status: StatusActive}, 100)
	require.NoError(t, err)
	require.Equal(t, 0, balance)

	balance, err = Redeem(Reward{PointsCost: 100, Status: StatusActive}, 50)
	require.ErrorIs(t, err, ledger.ErrInsufficientPoints)
	require.Equal(t, 50, balance)

	_, err = Redeem(Reward{PointsCost: 100, Status: StatusComingSoon}, 500)
	require.ErrorIs(t, err, ledger.ErrNotRedeemable)

	// affordability is checked before status
	_, err = Redeem(Reward{PointsCost: 1000, Status: StatusComingSoon}, 500)
	require.ErrorIs(t, err, ledger.ErrInsufficientPoints)
}

func TestAnnotateFiltersAndCounts(t *testing.T) {
	rewards := []Reward{
		{Title: "Sticker", PointsCost: 50, Status: StatusActive},
		{Title: "Mug", PointsCost: 200, Status: StatusActive},
		{Title: "Course", PointsCost: 5000, Status: StatusActive},
		{Title: "Trip", PointsCost: 100, Status: StatusComingSoon},
	}
	want := Counts{All: 4, Unlocked: 2, Locked: 1, ComingSoon: 1}

	items, counts := Annotate(rewards, 200, FilterAll)
	require.Len(t, items, 4)
	require.Equal(t, want, counts)

	items, counts = Annotate(rewards, 200, FilterUnlocked)
	require.Len(t, items, 2)
	require.Equal(t, "Sticker", items[0].Title)
	require.Equal(t, want, counts)

	items, _ = Annotate(rewards, 200, FilterLocked)
	require.Len(t, items, 1)
	require.Equal(t, Locked, items[0].Availability)

	items, _ = Annotate(rewards, 200, FilterComingSoon)
	require.Len(t, items, 1)
	require.Equal(t, "Trip", items[0].Title)
}

func TestDescription(t *testing.T) {
	require.Equal(t, "Redeemed: Mug", Description(Reward{Title: "Mug"}))
}
