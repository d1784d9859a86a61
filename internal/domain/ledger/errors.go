package ledger

import (
	"database/sql"
	"errors"
	"fmt"
)

var (
	// ErrAuthenticationRequired is returned when an operation runs without a user
	ErrAuthenticationRequired = errors.New("authentication required")

	// ErrAlreadyClaimed is returned for a repeated daily streak or one-time award
	ErrAlreadyClaimed = errors.New("already claimed")

	// ErrInsufficientPoints is returned when the balance does not cover a reward
	ErrInsufficientPoints = errors.New("insufficient points")

	// ErrNotRedeemable is returned for rewards that are not yet available
	ErrNotRedeemable = errors.New("reward is not redeemable")

	ErrNotFound = errors.New("not found")

	// ErrStore wraps failures of the backing database
	ErrStore = errors.New("store error")
)

// StoreErr maps a driver error: sql.ErrNoRows becomes ErrNotFound, anything
// else is wrapped as ErrStore while keeping the original in the chain.
func StoreErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if isDomainErr(err) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrStore, op, err)
}

func isDomainErr(err error) bool {
	for _, target := range []error{ErrAuthenticationRequired, ErrAlreadyClaimed, ErrInsufficientPoints, ErrNotRedeemable, ErrNotFound, ErrStore} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
