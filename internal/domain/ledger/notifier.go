package ledger

import (
	"context"

	"github.com/google/uuid"
)

// Notifier is told after a ledger mutation commits so clients can refresh.
type Notifier interface {
	PointsUpdated(ctx context.Context, userID uuid.UUID, reason Kind)
}

// NopNotifier discards notifications.
type NopNotifier struct{}

func (NopNotifier) PointsUpdated(context.Context, uuid.UUID, Kind) {}
