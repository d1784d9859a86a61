package streak

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/flowva/rewards-api/internal/domain/ledger"
	"github.com/flowva/rewards-api/internal/pkg/database"
)

const queryTimeout = 3 * time.Second

// Repository persists streak state.
type Repository interface {
	Get(ctx context.Context, userID uuid.UUID) (State, error)
	// SaveClaim stores next and appends entry atomically. It fails with
	// ledger.ErrAlreadyClaimed if the stored state no longer matches prev or
	// its date is not earlier than next's.
	SaveClaim(ctx context.Context, prev, next State, entry *ledger.Transaction) error
	InitTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID) error
}

type repository struct {
	db     *sqlx.DB
	ledger ledger.Repository
}

func NewRepository(db *sqlx.DB, ledgerRepo ledger.Repository) Repository {
	return &repository{db: db, ledger: ledgerRepo}
}

func (r *repository) Get(ctx context.Context, userID uuid.UUID) (State, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var state State
	err := r.db.GetContext(ctx, &state, `
		SELECT user_id, current_streak, last_claimed_date
		FROM daily_streaks
		WHERE user_id = $1
	`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return State{UserID: userID}, nil
	}
	if err != nil {
		return State{}, ledger.StoreErr("get streak", err)
	}
	return state, nil
}

func (r *repository) SaveClaim(ctx context.Context, prev, next State, entry *ledger.Transaction) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, `
			INSERT INTO daily_streaks (user_id, current_streak, last_claimed_date)
			VALUES ($1, $2, $3)
			ON CONFLICT (user_id) DO UPDATE
			SET current_streak = EXCLUDED.current_streak,
			    last_claimed_date = EXCLUDED.last_claimed_date,
			    updated_at = NOW()
			WHERE (daily_streaks.last_claimed_date IS NULL OR daily_streaks.last_claimed_date < EXCLUDED.last_claimed_date)
			  AND daily_streaks.last_claimed_date IS NOT DISTINCT FROM $4
		`, next.UserID, next.CurrentStreak, next.LastClaimedDate, prev.LastClaimedDate)
		if err != nil {
			return ledger.StoreErr("save streak", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return ledger.StoreErr("save streak rows affected", err)
		}
		if rows == 0 {
			return ledger.ErrAlreadyClaimed
		}

		return r.ledger.AppendTx(ctx, tx, entry)
	})
}

// InitTx creates the empty streak row for a new user.
func (r *repository) InitTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO daily_streaks (user_id, current_streak, last_claimed_date)
		VALUES ($1, 0, NULL)
		ON CONFLICT (user_id) DO NOTHING
	`, userID)
	if err != nil {
		return ledger.StoreErr("init streak", err)
	}
	return nil
}
