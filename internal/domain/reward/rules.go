package reward

import (
	"fmt"

	"github.com/flowva/rewards-api/internal/domain/ledger"
)

// Classify returns the reward's availability for balance. coming_soon wins
// over affordability.
func Classify(r Reward, balance int) Availability {
	if r.Status == StatusComingSoon {
		return ComingSoon
	}
	if balance >= r.PointsCost {
		return Unlocked
	}
	return Locked
}

// Redeem checks that balance covers the reward and that it is redeemable, and
// returns the balance after the debit. Affordability is checked first.
func Redeem(r Reward, balance int) (int, error) {
	if balance < r.PointsCost {
		return balance, ledger.ErrInsufficientPoints
	}
	if r.Status == StatusComingSoon {
		return balance, ledger.ErrNotRedeemable
	}
	return balance - r.PointsCost, nil
}

// Description is the ledger text for a redemption
func Description(r Reward) string {
	return fmt.Sprintf("Redeemed: %s", r.Title)
}

// Item is a catalog row annotated for one user
type Item struct {
	Reward
	Availability Availability `json:"availability"`
}

// Counts holds the number of rewards per filter tab
type Counts struct {
	All        int `json:"all"`
	Unlocked   int `json:"unlocked"`
	Locked     int `json:"locked"`
	ComingSoon int `json:"coming_soon"`
}

// Annotate classifies rewards for balance, keeps those matching filter and
// counts every tab over the full catalog.
func Annotate(rewards []Reward, balance int, filter Filter) ([]Item, Counts) {
	items := make([]Item, 0, len(rewards))
	var counts Counts

	for _, r := range rewards {
		a := Classify(r, balance)
		counts.All++
		switch a {
		case Unlocked:
			counts.Unlocked++
		case Locked:
			counts.Locked++
		case ComingSoon:
			counts.ComingSoon++
		}

		if filter == "" || filter == FilterAll || Filter(a) == filter {
			items = append(items, Item{Reward: r, Availability: a})
		}
	}
	return items, counts
}
