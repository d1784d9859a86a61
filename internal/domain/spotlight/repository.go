package spotlight

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/flowva/rewards-api/internal/domain/ledger"
	"github.com/flowva/rewards-api/internal/pkg/database"
)

const queryTimeout = 3 * time.Second

// uniqueClaimIndex backs the one-award-per-user-and-tool rule
const uniqueClaimIndex = "point_transactions_spotlight_once_idx"

const toolColumns = `id, name, description, cta_label, cta_url, points_reward, is_featured, icon_url, created_at`

type Repository interface {
	GetFeatured(ctx context.Context) (*Tool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Tool, error)
	Create(ctx context.Context, t *Tool) error
	// Feature marks id as the only featured tool
	Feature(ctx context.Context, id uuid.UUID) error
	Claims(ctx context.Context, userID uuid.UUID) ([]ledger.Transaction, error)
	// Claim appends entry unless HasClaimed already holds under the user lock
	Claim(ctx context.Context, userID uuid.UUID, tool Tool, entry *ledger.Transaction) error
}

type repository struct {
	db     *sqlx.DB
	ledger ledger.Repository
}

func NewRepository(db *sqlx.DB, ledgerRepo ledger.Repository) Repository {
	return &repository{db: db, ledger: ledgerRepo}
}

func (r *repository) GetFeatured(ctx context.Context) (*Tool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var t Tool
	err := r.db.GetContext(ctx, &t, `
		SELECT `+toolColumns+` FROM spotlight_tools
		WHERE is_featured
		ORDER BY created_at DESC
		LIMIT 1
	`)
	if err != nil {
		return nil, ledger.StoreErr("get featured spotlight", err)
	}
	return &t, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Tool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var t Tool
	if err := r.db.GetContext(ctx, &t, `SELECT `+toolColumns+` FROM spotlight_tools WHERE id = $1`, id); err != nil {
		return nil, ledger.StoreErr("get spotlight", err)
	}
	return &t, nil
}

func (r *repository) Create(ctx context.Context, t *Tool) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if t.IsFeatured {
			if _, err := tx.ExecContext(ctx, `UPDATE spotlight_tools SET is_featured = FALSE WHERE is_featured`); err != nil {
				return ledger.StoreErr("unfeature spotlight", err)
			}
		}
		err := tx.QueryRowxContext(ctx, `
			INSERT INTO spotlight_tools (id, name, description, cta_label, cta_url, points_reward, is_featured, icon_url)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING created_at
		`, t.ID, t.Name, t.Description, t.CTALabel, t.CTAURL, t.PointsReward, t.IsFeatured, t.IconURL).Scan(&t.CreatedAt)
		if err != nil {
			return ledger.StoreErr("create spotlight", err)
		}
		return nil
	})
}

func (r *repository) Feature(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `UPDATE spotlight_tools SET is_featured = FALSE WHERE is_featured AND id <> $1`, id); err != nil {
			return ledger.StoreErr("unfeature spotlight", err)
		}
		result, err := tx.ExecContext(ctx, `UPDATE spotlight_tools SET is_featured = TRUE WHERE id = $1`, id)
		if err != nil {
			return ledger.StoreErr("feature spotlight", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return ledger.StoreErr("feature spotlight", err)
		}
		if rows == 0 {
			return ledger.ErrNotFound
		}
		return nil
	})
}

func (r *repository) Claims(ctx context.Context, userID uuid.UUID) ([]ledger.Transaction, error) {
	return r.ledger.ListByKind(ctx, userID, ledger.KindSpotlight)
}

func (r *repository) Claim(ctx context.Context, userID uuid.UUID, tool Tool, entry *ledger.Transaction) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := r.ledger.LockUserTx(ctx, tx, userID); err != nil {
			return err
		}

		txs, err := r.ledger.ListByUserTx(ctx, tx, userID)
		if err != nil {
			return err
		}
		if HasClaimed(userID, tool, txs) {
			return ledger.ErrAlreadyClaimed
		}

		return r.ledger.AppendTx(ctx, tx, entry)
	})
	if database.IsUniqueViolation(err, uniqueClaimIndex) {
		return ledger.ErrAlreadyClaimed
	}
	return err
}
