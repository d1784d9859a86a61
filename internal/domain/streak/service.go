package streak

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/flowva/rewards-api/internal/domain/ledger"
	"github.com/flowva/rewards-api/internal/pkg/clock"
	"github.com/flowva/rewards-api/internal/pkg/logger"
	"github.com/flowva/rewards-api/internal/pkg/metrics"
)

// Service handles daily check-ins
type Service struct {
	repo       Repository
	clock      clock.Clock
	defaultLoc *time.Location
	notifier   ledger.Notifier
	metrics    *metrics.Metrics
}

// NewService creates streak service. A nil notifier or metrics is allowed.
func NewService(repo Repository, clk clock.Clock, defaultLoc *time.Location, notifier ledger.Notifier, m *metrics.Metrics) *Service {
	if clk == nil {
		clk = clock.Real{}
	}
	if defaultLoc == nil {
		defaultLoc = time.UTC
	}
	if notifier == nil {
		notifier = ledger.NopNotifier{}
	}
	return &Service{repo: repo, clock: clk, defaultLoc: defaultLoc, notifier: notifier, metrics: m}
}

// Today resolves the caller's calendar date from an IANA zone name.
func (s *Service) Today(timezone string) time.Time {
	return clock.Today(s.clock, clock.LoadLocation(timezone, s.defaultLoc))
}

// Status returns the streak card for today.
func (s *Service) Status(ctx context.Context, userID uuid.UUID, today time.Time) (*Status, error) {
	if userID == uuid.Nil {
		return nil, ledger.ErrAuthenticationRequired
	}

	state, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	status := &Status{
		CurrentStreak: state.CurrentStreak,
		CanClaimToday: CanClaimToday(state, today),
		Today:         formatDate(today),
		WeekdayIndex:  WeekdayIndex(today),
	}
	if state.LastClaimedDate != nil {
		d := formatDate(*state.LastClaimedDate)
		status.LastClaimedDate = &d
	}
	return status, nil
}

// Claim records today's check-in: the streak state and the +5 ledger entry are
// written in one transaction. A second claim on the same day fails with
// ledger.ErrAlreadyClaimed and changes nothing.
func (s *Service) Claim(ctx context.Context, userID uuid.UUID, today time.Time) (*ClaimResult, error) {
	if userID == uuid.Nil {
		return nil, ledger.ErrAuthenticationRequired
	}

	state, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	state.UserID = userID

	next, points, err := Claim(state, today)
	if err != nil {
		s.metrics.Rejected("streak", "already_claimed")
		return nil, err
	}

	entry := ledger.NewTransaction(userID, ledger.KindStreak, points, Description(next.CurrentStreak))
	if err := s.repo.SaveClaim(ctx, state, next, entry); err != nil {
		if errors.Is(err, ledger.ErrAlreadyClaimed) {
			s.metrics.Rejected("streak", "already_claimed")
		}
		return nil, err
	}

	s.metrics.Awarded(string(ledger.KindStreak), points)
	s.notifier.PointsUpdated(ctx, userID, ledger.KindStreak)

	logger.FromContext(ctx).Info().
		Str("user_id", userID.String()).
		Int("streak", next.CurrentStreak).
		Msg("Daily streak claimed")

	return &ClaimResult{
		CurrentStreak:   next.CurrentStreak,
		PointsAwarded:   points,
		LastClaimedDate: formatDate(*next.LastClaimedDate),
	}, nil
}
