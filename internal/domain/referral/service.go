package referral

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/flowva/rewards-api/internal/domain/ledger"
	"github.com/flowva/rewards-api/internal/domain/user"
	"github.com/flowva/rewards-api/internal/pkg/logger"
	"github.com/flowva/rewards-api/internal/pkg/metrics"
)

// UserLookup resolves referral codes and profiles
type UserLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetByReferralCode(ctx context.Context, code string) (*user.User, error)
}

type Service struct {
	repo     Repository
	users    UserLookup
	baseURL  string
	notifier ledger.Notifier
	metrics  *metrics.Metrics
}

func NewService(repo Repository, users UserLookup, baseURL string, notifier ledger.Notifier, m *metrics.Metrics) *Service {
	if notifier == nil {
		notifier = ledger.NopNotifier{}
	}
	return &Service{repo: repo, users: users, baseURL: baseURL, notifier: notifier, metrics: m}
}

// CompleteReferral credits the owner of code for referredUserID's signup.
// Unknown codes and self-referrals return ledger.ErrNotFound; a repeated
// pair returns ErrDuplicateReferral and awards nothing.
func (s *Service) CompleteReferral(ctx context.Context, code string, referredUserID uuid.UUID) error {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return ledger.ErrNotFound
	}

	referrer, err := s.users.GetByReferralCode(ctx, code)
	if err != nil {
		return err
	}
	if referrer.ID == referredUserID {
		return ledger.ErrNotFound
	}

	ref := &Referral{
		ID:             uuid.New(),
		ReferrerID:     referrer.ID,
		ReferredUserID: referredUserID,
		Status:         StatusCompleted,
	}
	entry := ledger.NewTransaction(referrer.ID, ledger.KindReferral, PointsPerReferral, Description)

	if err := s.repo.Complete(ctx, ref, entry); err != nil {
		if errors.Is(err, ErrDuplicateReferral) {
			s.metrics.Rejected("referral", "duplicate")
		}
		return err
	}

	s.metrics.Awarded(string(ledger.KindReferral), PointsPerReferral)
	s.notifier.PointsUpdated(ctx, referrer.ID, ledger.KindReferral)

	logger.FromContext(ctx).Info().
		Str("referrer_id", referrer.ID.String()).
		Str("referred_user_id", referredUserID.String()).
		Msg("Referral completed")
	return nil
}

// Stats returns the user's referral code, link and earnings
func (s *Service) Stats(ctx context.Context, userID uuid.UUID) (*Stats, error) {
	if userID == uuid.Nil {
		return nil, ledger.ErrAuthenticationRequired
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	completed, err := s.repo.CountCompleted(ctx, userID)
	if err != nil {
		return nil, err
	}

	link := Link(s.baseURL, u.ReferralCode)
	return &Stats{
		ReferralCode: u.ReferralCode,
		ReferralLink: link,
		Completed:    completed,
		PointsEarned: completed * PointsPerReferral,
		ShareLinks:   Share(link),
	}, nil
}
