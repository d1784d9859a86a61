package spotlight

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/flowva/rewards-api/internal/domain/ledger"
)

// Description is the ledger text for a spotlight award
func Description(t Tool) string {
	return fmt.Sprintf("Claimed spotlight reward for %s", t.Name)
}

// HasClaimed reports whether txs already holds userID's award for tool. Rows
// carrying a tool id match on it; older rows without one match when their
// description mentions the tool name, ignoring case.
func HasClaimed(userID uuid.UUID, tool Tool, txs []ledger.Transaction) bool {
	name := strings.ToLower(tool.Name)
	for _, t := range txs {
		if t.UserID != userID || t.Kind != ledger.KindSpotlight {
			continue
		}
		if t.SpotlightToolID != nil {
			if *t.SpotlightToolID == tool.ID {
				return true
			}
			continue
		}
		if name != "" && strings.Contains(strings.ToLower(t.Description), name) {
			return true
		}
	}
	return false
}

// NewClaim builds the ledger entry for a first claim
func NewClaim(userID uuid.UUID, tool Tool) *ledger.Transaction {
	entry := ledger.NewTransaction(userID, ledger.KindSpotlight, tool.PointsReward, Description(tool))
	toolID := tool.ID
	entry.SpotlightToolID = &toolID
	return entry
}
