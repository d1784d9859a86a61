package auth

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/flowva/rewards-api/internal/domain/ledger"
	"github.com/flowva/rewards-api/internal/domain/streak"
	"github.com/flowva/rewards-api/internal/domain/user"
	"github.com/flowva/rewards-api/internal/pkg/database"
)

const signupTimeout = 5 * time.Second

// AccountStore creates a new account as one unit: the user row, the empty
// streak row and the signup bonus either all exist or none do.
type AccountStore interface {
	CreateAccount(ctx context.Context, u *user.User, bonus *ledger.Transaction) error
}

type accountStore struct {
	db      *sqlx.DB
	users   user.Repository
	streaks streak.Repository
	ledger  ledger.Repository
}

func NewAccountStore(db *sqlx.DB, users user.Repository, streaks streak.Repository, ledgerRepo ledger.Repository) AccountStore {
	return &accountStore{db: db, users: users, streaks: streaks, ledger: ledgerRepo}
}

func (s *accountStore) CreateAccount(ctx context.Context, u *user.User, bonus *ledger.Transaction) error {
	ctx, cancel := context.WithTimeout(ctx, signupTimeout)
	defer cancel()

	return database.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if err := s.users.CreateTx(ctx, tx, u); err != nil {
			return err
		}
		if err := s.streaks.InitTx(ctx, tx, u.ID); err != nil {
			return err
		}
		return s.ledger.AppendTx(ctx, tx, bonus)
	})
}
