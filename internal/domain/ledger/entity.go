package ledger

import (
	"time"

	"github.com/google/uuid"
)

// Kind classifies a points transaction.
type Kind string

const (
	KindStreak    Kind = "streak"
	KindReferral  Kind = "referral"
	KindSpotlight Kind = "spotlight"
	KindShare     Kind = "share"
	KindSignup    Kind = "signup"
	KindManual    Kind = "manual"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindStreak, KindReferral, KindSpotlight, KindShare, KindSignup, KindManual:
		return true
	}
	return false
}

// Transaction is one append-only ledger row. A user's balance is the sum of
// PointsDelta over all of their rows.
type Transaction struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	UserID          uuid.UUID  `db:"user_id" json:"user_id"`
	Kind            Kind       `db:"type" json:"type"`
	PointsDelta     int        `db:"points_delta" json:"points_delta"`
	Description     string     `db:"description" json:"description"`
	SpotlightToolID *uuid.UUID `db:"spotlight_tool_id" json:"spotlight_tool_id,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
}

// NewTransaction builds a row ready for AppendTx.
func NewTransaction(userID uuid.UUID, kind Kind, delta int, description string) *Transaction {
	return &Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Kind:        kind,
		PointsDelta: delta,
		Description: description,
	}
}

// Pagination controls simple list pagination.
type Pagination struct {
	Limit  int
	Offset int
}

// Normalize clamps limit to [1, 100] (default 20) and offset to >= 0.
func (p Pagination) Normalize() Pagination {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
