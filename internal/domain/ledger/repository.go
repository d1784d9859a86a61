package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const queryTimeout = 3 * time.Second

const transactionColumns = `id, user_id, type, points_delta, description, spotlight_tool_id, created_at`

// Repository reads and appends point transactions. The *Tx variants run inside
// a caller-owned transaction and never commit or roll back.
type Repository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Transaction, error)
	ListByUserTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID) ([]Transaction, error)
	ListByKind(ctx context.Context, userID uuid.UUID, kind Kind) ([]Transaction, error)
	Page(ctx context.Context, userID uuid.UUID, p Pagination) ([]Transaction, int, error)
	AppendTx(ctx context.Context, tx *sqlx.Tx, t *Transaction) error
	LockUserTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var txs []Transaction
	err := r.db.SelectContext(ctx, &txs, `
		SELECT `+transactionColumns+` FROM point_transactions
		WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, StoreErr("list transactions", err)
	}
	return txs, nil
}

func (r *repository) ListByUserTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID) ([]Transaction, error) {
	var txs []Transaction
	err := tx.SelectContext(ctx, &txs, `
		SELECT `+transactionColumns+` FROM point_transactions
		WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, StoreErr("list transactions", err)
	}
	return txs, nil
}

func (r *repository) ListByKind(ctx context.Context, userID uuid.UUID, kind Kind) ([]Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var txs []Transaction
	err := r.db.SelectContext(ctx, &txs, `
		SELECT `+transactionColumns+` FROM point_transactions
		WHERE user_id = $1 AND type = $2
		ORDER BY created_at DESC
	`, userID, kind)
	if err != nil {
		return nil, StoreErr("list transactions by kind", err)
	}
	return txs, nil
}

func (r *repository) Page(ctx context.Context, userID uuid.UUID, p Pagination) ([]Transaction, int, error) {
	p = p.Normalize()

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM point_transactions WHERE user_id = $1`, userID); err != nil {
		return nil, 0, StoreErr("count transactions", err)
	}

	txs := []Transaction{}
	err := r.db.SelectContext(ctx, &txs, `
		SELECT `+transactionColumns+` FROM point_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, userID, p.Limit, p.Offset)
	if err != nil {
		return nil, 0, StoreErr("page transactions", err)
	}
	return txs, total, nil
}

func (r *repository) AppendTx(ctx context.Context, tx *sqlx.Tx, t *Transaction) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	err := tx.QueryRowxContext(ctx, `
		INSERT INTO point_transactions (id, user_id, type, points_delta, description, spotlight_tool_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, t.ID, t.UserID, t.Kind, t.PointsDelta, t.Description, t.SpotlightToolID).Scan(&t.CreatedAt)
	if err != nil {
		return StoreErr("append transaction", err)
	}
	return nil
}

// LockUserTx serializes balance-dependent writes for one user until tx ends.
func (r *repository) LockUserTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID) error {
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, userID.String()); err != nil {
		return StoreErr("lock user ledger", err)
	}
	return nil
}
