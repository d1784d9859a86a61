package spotlight

import (
	"time"

	"github.com/google/uuid"
)

// Tool is a promoted partner tool whose first claim earns a one-time award
type Tool struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Description  string    `db:"description" json:"description"`
	CTALabel     string    `db:"cta_label" json:"cta_label"`
	CTAURL       string    `db:"cta_url" json:"cta_url"`
	PointsReward int       `db:"points_reward" json:"points_reward"`
	IsFeatured   bool      `db:"is_featured" json:"is_featured"`
	IconURL      *string   `db:"icon_url" json:"icon_url,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// FeaturedResponse is returned by GET /spotlight
type FeaturedResponse struct {
	Tool    Tool `json:"tool"`
	Claimed bool `json:"claimed"`
}

// ClaimResponse is returned by POST /spotlight/claim
type ClaimResponse struct {
	ToolID        uuid.UUID `json:"tool_id"`
	PointsAwarded int       `json:"points_awarded"`
	CTAURL        string    `json:"cta_url"`
}

// ClaimRequest optionally names the tool. It must be the featured one.
type ClaimRequest struct {
	ToolID *uuid.UUID `json:"tool_id"`
}

// CreateToolRequest is the admin payload for a new spotlight tool
type CreateToolRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=80"`
	Description  string `json:"description" validate:"max=1000"`
	CTALabel     string `json:"cta_label" validate:"required,max=40"`
	CTAURL       string `json:"cta_url" validate:"required,url"`
	PointsReward int    `json:"points_reward" validate:"gt=0,lte=100000"`
	IconURL      string `json:"icon_url" validate:"omitempty,url"`
	Featured     bool   `json:"featured"`
}
