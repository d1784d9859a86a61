package referral

import (
	"time"

	"github.com/google/uuid"
)

// PointsPerReferral is credited to the referrer for each completed referral
const PointsPerReferral = 25

// Description is the ledger text for a referral credit
const Description = "Referral bonus for inviting a friend"

// Status of a referral
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Referral links a referrer to a user who signed up with their code
type Referral struct {
	ID             uuid.UUID `db:"id" json:"id"`
	ReferrerID     uuid.UUID `db:"referrer_id" json:"referrer_id"`
	ReferredUserID uuid.UUID `db:"referred_user_id" json:"referred_user_id"`
	Status         Status    `db:"status" json:"status"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// Stats is the "refer and earn" card
type Stats struct {
	ReferralCode string     `json:"referral_code"`
	ReferralLink string     `json:"referral_link"`
	Completed    int        `json:"completed"`
	PointsEarned int        `json:"points_earned"`
	ShareLinks   ShareLinks `json:"share_links"`
}

// ShareLinks are prefilled social share URLs for a referral link
type ShareLinks struct {
	Facebook string `json:"facebook"`
	Twitter  string `json:"twitter"`
	LinkedIn string `json:"linkedin"`
	WhatsApp string `json:"whatsapp"`
}
