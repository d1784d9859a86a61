package reward

// CreateRewardRequest is the admin payload for a new catalog entry
type CreateRewardRequest struct {
	Title       string `json:"title" validate:"required,min=2,max=120"`
	Description string `json:"description" validate:"max=1000"`
	PointsCost  int    `json:"points_cost" validate:"gte=0"`
	Status      string `json:"status" validate:"required,reward_status"`
}

// UpdateStatusRequest changes a reward's catalog status
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,reward_status"`
}

// CatalogQuery is parsed from GET /rewards
type CatalogQuery struct {
	Filter string `json:"filter" validate:"rewards_filter"`
}

// CatalogResponse is the rewards page for one user
type CatalogResponse struct {
	Balance int    `json:"balance"`
	Filter  Filter `json:"filter"`
	Items   []Item `json:"items"`
	Counts  Counts `json:"counts"`
}

// RedeemResponse is returned after a successful redemption
type RedeemResponse struct {
	Redemption *Redemption `json:"redemption"`
	Balance    int         `json:"balance"`
}
