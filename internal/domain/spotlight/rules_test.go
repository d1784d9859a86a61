package spotlight

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/flowva/rewards-api/internal/domain/ledger"
)

func TestHasClaimed(t *testing.T) {
	userID := uuid.New()
	tool := Tool{ID: uuid.New(), Name: "Reclaim", PointsReward: 50}
	other := Tool{ID: uuid.New(), Name: "Notion"}

	require.False(t, HasClaimed(userID, tool, nil))

	claimed := []ledger.Transaction{*NewClaim(userID, tool)}
	require.True(t, HasClaimed(userID, tool, claimed))
	require.False(t, HasClaimed(userID, other, claimed))
	require.False(t, HasClaimed(uuid.New(), tool, claimed))
}

func TestHasClaimedLegacyDescription(t *testing.T) {
	userID := uuid.New()
	tool := Tool{ID: uuid.New(), Name: "Reclaim"}

	legacy := []ledger.Transaction{{
		UserID:      userID,
		Kind:        ledger.KindSpotlight,
		PointsDelta: 50,
		Description: "claimed SPOTLIGHT reward for reclaim",
	}}
	require.True(t, HasClaimed(userID, tool, legacy))

	// a non-spotlight row mentioning the name does not count
	legacy[0].Kind = ledger.KindManual
	require.False(t, HasClaimed(userID, tool, legacy))
}

func TestHasClaimedStructuredKeyWins(t *testing.T) {
	userID := uuid.New()
	tool := Tool{ID: uuid.New(), Name: "Reclaim"}
	otherID := uuid.New()

	// a structured row for another tool is not matched by description
	txs := []ledger.Transaction{{
		UserID:          userID,
		Kind:            ledger.KindSpotlight,
		Description:     "Claimed spotlight reward for Reclaim Pro",
		SpotlightToolID: &otherID,
	}}
	require.False(t, HasClaimed(userID, tool, txs))
}

func TestNewClaim(t *testing.T) {
	userID := uuid.New()
	tool := Tool{ID: uuid.New(), Name: "Reclaim", PointsReward: 50}

	entry := NewClaim(userID, tool)
	require.Equal(t, ledger.KindSpotlight, entry.Kind)
	require.Equal(t, 50, entry.PointsDelta)
	require.Equal(t, "Claimed spotlight reward for Reclaim", entry.Description)
	require.Equal(t, tool.ID, *entry.SpotlightToolID)
}
