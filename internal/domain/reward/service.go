package reward

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/flowva/rewards-api/internal/domain/ledger"
	"github.com/flowva/rewards-api/internal/pkg/imaging"
	"github.com/flowva/rewards-api/internal/pkg/logger"
	"github.com/flowva/rewards-api/internal/pkg/metrics"
	"github.com/flowva/rewards-api/internal/pkg/storage"
)

// BalanceReader derives a user's current balance
type BalanceReader interface {
	Balance(ctx context.Context, userID uuid.UUID) (*ledger.Summary, error)
}

// Service handles the rewards catalog and redemptions
type Service struct {
	repo      Repository
	balances  BalanceReader
	cache     CatalogCache
	storage   storage.Storage
	processor *imaging.Processor
	notifier  ledger.Notifier
	metrics   *metrics.Metrics
}

// Deps groups the optional collaborators of Service
type Deps struct {
	Cache     CatalogCache
	Storage   storage.Storage
	Processor *imaging.Processor
	Notifier  ledger.Notifier
	Metrics   *metrics.Metrics
}

func NewService(repo Repository, balances BalanceReader, deps Deps) *Service {
	if deps.Notifier == nil {
		deps.Notifier = ledger.NopNotifier{}
	}
	if deps.Processor == nil {
		deps.Processor = imaging.NewProcessor(imaging.DefaultConfig())
	}
	return &Service{
		repo:      repo,
		balances:  balances,
		cache:     deps.Cache,
		storage:   deps.Storage,
		processor: deps.Processor,
		notifier:  deps.Notifier,
		metrics:   deps.Metrics,
	}
}

func (s *Service) rewards(ctx context.Context) ([]Reward, error) {
	if s.cache != nil {
		if rewards, ok := s.cache.Get(ctx); ok {
			return rewards, nil
		}
	}

	rewards, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, rewards)
	}
	return rewards, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}

// Catalog returns rewards ordered by cost, classified for the user's balance.
func (s *Service) Catalog(ctx context.Context, userID uuid.UUID, filter Filter) (*CatalogResponse, error) {
	if userID == uuid.Nil {
		return nil, ledger.ErrAuthenticationRequired
	}
	if filter == "" {
		filter = FilterAll
	}

	summary, err := s.balances.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}

	rewards, err := s.rewards(ctx)
	if err != nil {
		return nil, err
	}

	items, counts := Annotate(rewards, summary.Balance, filter)
	return &CatalogResponse{
		Balance: summary.Balance,
		Filter:  filter,
		Items:   items,
		Counts:  counts,
	}, nil
}

// Redeem debits the reward's cost and records a pending redemption.
func (s *Service) Redeem(ctx context.Context, userID, rewardID uuid.UUID) (*RedeemResponse, error) {
	if userID == uuid.Nil {
		return nil, ledger.ErrAuthenticationRequired
	}

	redemption, balance, err := s.repo.Redeem(ctx, userID, rewardID, Redeem)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrInsufficientPoints):
			s.metrics.Rejected("redeem", "insufficient_points")
		case errors.Is(err, ledger.ErrNotRedeemable):
			s.metrics.Rejected("redeem", "not_redeemable")
		}
		return nil, err
	}

	s.metrics.Redeemed(redemption.PointsSpent)
	s.notifier.PointsUpdated(ctx, userID, ledger.KindManual)

	logger.FromContext(ctx).Info().
		Str("user_id", userID.String()).
		Str("reward_id", rewardID.String()).
		Int("points", redemption.PointsSpent).
		Msg("Reward redeemed")

	return &RedeemResponse{Redemption: redemption, Balance: balance}, nil
}

// Redemptions lists the user's redemptions newest first
func (s *Service) Redemptions(ctx context.Context, userID uuid.UUID) ([]Redemption, error) {
	if userID == uuid.Nil {
		return nil, ledger.ErrAuthenticationRequired
	}
	return s.repo.ListRedemptions(ctx, userID)
}

// Create adds a catalog entry
func (s *Service) Create(ctx context.Context, req *CreateRewardRequest) (*Reward, error) {
	status := Status(req.Status)
	if status != StatusActive && status != StatusComingSoon {
		return nil, ErrInvalidStatus
	}

	r := &Reward{
		Title:       req.Title,
		Description: req.Description,
		PointsCost:  req.PointsCost,
		Status:      status,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return r, nil
}

// SetStatus switches a reward between active and coming_soon
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, status Status) (*Reward, error) {
	if status != StatusActive && status != StatusComingSoon {
		return nil, ErrInvalidStatus
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return s.repo.GetByID(ctx, id)
}

// UploadIcon validates, crops and stores a reward icon and records its URL.
func (s *Service) UploadIcon(ctx context.Context, id uuid.UUID, file io.Reader) (*Reward, error) {
	if s.storage == nil {
		return nil, ErrStorageDisabled
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	data, _, err := storage.ValidateIcon(file, storage.MaxIconSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidIcon, err)
	}

	icon, err := s.processor.Process(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidIcon, err)
	}

	key := fmt.Sprintf("rewards/%s/icon-%s%s", id, uuid.NewString()[:8], storage.ExtensionForMime(icon.ContentType))
	if err := s.storage.Put(ctx, key, bytes.NewReader(icon.Data), icon.ContentType); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateIcon(ctx, id, s.storage.GetURL(key)); err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			logger.FromContext(ctx).Warn().Err(delErr).Str("key", key).Msg("Failed to remove orphaned icon")
		}
		return nil, err
	}

	s.invalidate(ctx)
	return s.repo.GetByID(ctx, id)
}
