package user

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/flowva/rewards-api/internal/domain/ledger"
	"github.com/flowva/rewards-api/internal/pkg/database"
)

const queryTimeout = 3 * time.Second

const userColumns = `id, email, password_hash, display_name, avatar_url, referral_code, role, created_at, updated_at`

// Repository defines user data access interface
type Repository interface {
	CreateTx(ctx context.Context, tx *sqlx.Tx, user *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByReferralCode(ctx context.Context, code string) (*User, error)
}

// repository implements Repository
type repository struct {
	db *sqlx.DB
}

// NewRepository creates new user repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// CreateTx inserts user inside tx. Duplicate e-mail and referral code map to
// ErrEmailAlreadyExists and ErrReferralCodeTaken.
func (r *repository) CreateTx(ctx context.Context, tx *sqlx.Tx, user *User) error {
	err := tx.QueryRowxContext(ctx, `
		INSERT INTO users (id, email, password_hash, display_name, avatar_url, referral_code, role)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.DisplayName,
		user.AvatarURL,
		user.ReferralCode,
		user.Role,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if constraint, ok := database.UniqueViolation(err); ok {
			switch {
			case strings.Contains(constraint, "referral_code"):
				return ErrReferralCodeTaken
			case strings.Contains(constraint, "email"):
				return ErrEmailAlreadyExists
			}
		}
		return ledger.StoreErr("create user", err)
	}
	return nil
}

// GetByID returns user by ID
func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return r.getOne(ctx, "id", id)
}

// GetByEmail returns user by email
func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.getOne(ctx, "email", email)
}

// GetByReferralCode returns the owner of a referral code
func (r *repository) GetByReferralCode(ctx context.Context, code string) (*User, error) {
	return r.getOne(ctx, "referral_code", code)
}

func (r *repository) getOne(ctx context.Context, column string, value interface{}) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var user User
	if err := r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE `+column+` = $1`, value); err != nil {
		return nil, ledger.StoreErr("get user by "+column, err)
	}
	return &user, nil
}
