package reward

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/flowva/rewards-api/internal/domain/ledger"
	"github.com/flowva/rewards-api/internal/pkg/database"
)

const queryTimeout = 3 * time.Second

const rewardColumns = `id, title, description, points_cost, status, icon_url, created_at`

// CheckFunc validates a redemption against the balance derived inside the
// redemption transaction and returns the resulting balance.
type CheckFunc func(r Reward, balance int) (int, error)

// Repository persists the catalog and redemptions.
type Repository interface {
	List(ctx context.Context) ([]Reward, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Reward, error)
	Create(ctx context.Context, r *Reward) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	UpdateIcon(ctx context.Context, id uuid.UUID, iconURL string) error
	// Redeem locks the user's ledger, derives the balance, runs check and on
	// success inserts the redemption and its debit in the same transaction.
	Redeem(ctx context.Context, userID, rewardID uuid.UUID, check CheckFunc) (*Redemption, int, error)
	ListRedemptions(ctx context.Context, userID uuid.UUID) ([]Redemption, error)
}

type repository struct {
	db     *sqlx.DB
	ledger ledger.Repository
}

func NewRepository(db *sqlx.DB, ledgerRepo ledger.Repository) Repository {
	return &repository{db: db, ledger: ledgerRepo}
}

func (r *repository) List(ctx context.Context) ([]Reward, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rewards := []Reward{}
	err := r.db.SelectContext(ctx, &rewards, `
		SELECT `+rewardColumns+` FROM rewards
		ORDER BY points_cost ASC, created_at ASC
	`)
	if err != nil {
		return nil, ledger.StoreErr("list rewards", err)
	}
	return rewards, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Reward, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var reward Reward
	if err := r.db.GetContext(ctx, &reward, `SELECT `+rewardColumns+` FROM rewards WHERE id = $1`, id); err != nil {
		return nil, ledger.StoreErr("get reward", err)
	}
	return &reward, nil
}

func (r *repository) Create(ctx context.Context, reward *Reward) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if reward.ID == uuid.Nil {
		reward.ID = uuid.New()
	}
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO rewards (id, title, description, points_cost, status, icon_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, reward.ID, reward.Title, reward.Description, reward.PointsCost, reward.Status, reward.IconURL).Scan(&reward.CreatedAt)
	if err != nil {
		return ledger.StoreErr("create reward", err)
	}
	return nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	return r.updateOne(ctx, "update reward status", `UPDATE rewards SET status = $2 WHERE id = $1`, id, status)
}

func (r *repository) UpdateIcon(ctx context.Context, id uuid.UUID, iconURL string) error {
	return r.updateOne(ctx, "update reward icon", `UPDATE rewards SET icon_url = $2 WHERE id = $1`, id, iconURL)
}

func (r *repository) updateOne(ctx context.Context, op, query string, args ...interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return ledger.StoreErr(op, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return ledger.StoreErr(op, err)
	}
	if rows == 0 {
		return ledger.ErrNotFound
	}
	return nil
}

func (r *repository) Redeem(ctx context.Context, userID, rewardID uuid.UUID, check CheckFunc) (*Redemption, int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var (
		redemption *Redemption
		newBalance int
	)
	err := database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := r.ledger.LockUserTx(ctx, tx, userID); err != nil {
			return err
		}

		var reward Reward
		if err := tx.GetContext(ctx, &reward, `SELECT `+rewardColumns+` FROM rewards WHERE id = $1 FOR SHARE`, rewardID); err != nil {
			return ledger.StoreErr("get reward", err)
		}

		txs, err := r.ledger.ListByUserTx(ctx, tx, userID)
		if err != nil {
			return err
		}

		newBalance, err = check(reward, ledger.ComputeBalance(txs))
		if err != nil {
			return err
		}

		redemption = &Redemption{
			ID:          uuid.New(),
			UserID:      userID,
			RewardID:    reward.ID,
			RewardTitle: reward.Title,
			PointsSpent: reward.PointsCost,
			Status:      RedemptionPending,
		}
		err = tx.QueryRowxContext(ctx, `
			INSERT INTO reward_redemptions (id, user_id, reward_id, points_spent, status)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING created_at
		`, redemption.ID, userID, reward.ID, reward.PointsCost, redemption.Status).Scan(&redemption.CreatedAt)
		if err != nil {
			return ledger.StoreErr("insert redemption", err)
		}

		return r.ledger.AppendTx(ctx, tx, ledger.NewTransaction(userID, ledger.KindManual, -reward.PointsCost, Description(reward)))
	})
	if err != nil {
		return nil, 0, ledger.StoreErr("redeem", err)
	}
	return redemption, newBalance, nil
}

func (r *repository) ListRedemptions(ctx context.Context, userID uuid.UUID) ([]Redemption, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	redemptions := []Redemption{}
	err := r.db.SelectContext(ctx, &redemptions, `
		SELECT rr.id, rr.user_id, rr.reward_id, rw.title AS reward_title,
		       rr.points_spent, rr.status, rr.created_at
		FROM reward_redemptions rr
		JOIN rewards rw ON rw.id = rr.reward_id
		WHERE rr.user_id = $1
		ORDER BY rr.created_at DESC
	`, userID)
	if err != nil {
		return nil, ledger.StoreErr("list redemptions", err)
	}
	return redemptions, nil
}
