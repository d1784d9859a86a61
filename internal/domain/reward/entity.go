package reward

import (
	"time"

	"github.com/google/uuid"
)

// Status is the catalog state set by administrators
type Status string

const (
	StatusActive     Status = "active"
	StatusComingSoon Status = "coming_soon"
)

// Availability is a reward's state relative to one user's balance
type Availability string

const (
	Unlocked   Availability = "unlocked"
	Locked     Availability = "locked"
	ComingSoon Availability = "coming_soon"
)

// Filter selects catalog entries by availability
type Filter string

const (
	FilterAll        Filter = "all"
	FilterUnlocked   Filter = "unlocked"
	FilterLocked     Filter = "locked"
	FilterComingSoon Filter = "coming_soon"
)

// Reward is a catalog entry
type Reward struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	PointsCost  int       `db:"points_cost" json:"points_cost"`
	Status      Status    `db:"status" json:"status"`
	IconURL     *string   `db:"icon_url" json:"icon_url,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// RedemptionStatus tracks fulfilment of a redemption
type RedemptionStatus string

const (
	RedemptionPending   RedemptionStatus = "pending"
	RedemptionCompleted RedemptionStatus = "completed"
	RedemptionCancelled RedemptionStatus = "cancelled"
)

// Redemption is a user's claim on a reward
type Redemption struct {
	ID          uuid.UUID        `db:"id" json:"id"`
	UserID      uuid.UUID        `db:"user_id" json:"user_id"`
	RewardID    uuid.UUID        `db:"reward_id" json:"reward_id"`
	RewardTitle string           `db:"reward_title" json:"reward_title"`
	PointsSpent int              `db:"points_spent" json:"points_spent"`
	Status      RedemptionStatus `db:"status" json:"status"`
	CreatedAt   time.Time        `db:"created_at" json:"created_at"`
}
