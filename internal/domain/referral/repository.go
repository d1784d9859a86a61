package referral

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/flowva/rewards-api/internal/domain/ledger"
	"github.com/flowva/rewards-api/internal/pkg/database"
)

const queryTimeout = 3 * time.Second

const uniquePairConstraint = "referrals_referrer_referred_key"

type Repository interface {
	// Complete records a completed referral and credits the referrer in one
	// transaction. A repeated pair fails with ErrDuplicateReferral.
	Complete(ctx context.Context, ref *Referral, entry *ledger.Transaction) error
	CountCompleted(ctx context.Context, referrerID uuid.UUID) (int, error)
}

type repository struct {
	db     *sqlx.DB
	ledger ledger.Repository
}

func NewRepository(db *sqlx.DB, ledgerRepo ledger.Repository) Repository {
	return &repository{db: db, ledger: ledgerRepo}
}

func (r *repository) Complete(ctx context.Context, ref *Referral, entry *ledger.Transaction) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx, `
			INSERT INTO referrals (id, referrer_id, referred_user_id, status)
			VALUES ($1, $2, $3, $4)
			RETURNING created_at
		`, ref.ID, ref.ReferrerID, ref.ReferredUserID, ref.Status).Scan(&ref.CreatedAt)
		if err != nil {
			return ledger.StoreErr("insert referral", err)
		}
		return r.ledger.AppendTx(ctx, tx, entry)
	})
	if database.IsUniqueViolation(err, uniquePairConstraint) {
		return ErrDuplicateReferral
	}
	return err
}

func (r *repository) CountCompleted(ctx context.Context, referrerID uuid.UUID) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var n int
	err := r.db.GetContext(ctx, &n, `
		SELECT COUNT(*) FROM referrals
		WHERE referrer_id = $1 AND status = 'completed'
	`, referrerID)
	if err != nil {
		return 0, ledger.StoreErr("count referrals", err)
	}
	return n, nil
}
