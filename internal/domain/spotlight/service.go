package spotlight

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/flowva/rewards-api/internal/domain/ledger"
	"github.com/flowva/rewards-api/internal/pkg/logger"
	"github.com/flowva/rewards-api/internal/pkg/metrics"
)

type Service struct {
	repo     Repository
	notifier ledger.Notifier
	metrics  *metrics.Metrics
}

func NewService(repo Repository, notifier ledger.Notifier, m *metrics.Metrics) *Service {
	if notifier == nil {
		notifier = ledger.NopNotifier{}
	}
	return &Service{repo: repo, notifier: notifier, metrics: m}
}

// Featured returns the featured tool and whether the user already claimed it.
// ledger.ErrNotFound means nothing is featured.
func (s *Service) Featured(ctx context.Context, userID uuid.UUID) (*FeaturedResponse, error) {
	if userID == uuid.Nil {
		return nil, ledger.ErrAuthenticationRequired
	}

	tool, err := s.repo.GetFeatured(ctx)
	if err != nil {
		return nil, err
	}

	claims, err := s.repo.Claims(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &FeaturedResponse{Tool: *tool, Claimed: HasClaimed(userID, *tool, claims)}, nil
}

// Claim awards the featured tool's points once per user. A toolID naming any
// other tool fails with ledger.ErrNotFound.
func (s *Service) Claim(ctx context.Context, userID uuid.UUID, toolID *uuid.UUID) (*ClaimResponse, error) {
	if userID == uuid.Nil {
		return nil, ledger.ErrAuthenticationRequired
	}

	var (
		tool *Tool
		err  error
	)
	if toolID != nil {
		tool, err = s.repo.GetByID(ctx, *toolID)
	} else {
		tool, err = s.repo.GetFeatured(ctx)
	}
	if err != nil {
		return nil, err
	}
	if !tool.IsFeatured {
		s.metrics.Rejected("spotlight", "not_featured")
		return nil, ledger.ErrNotFound
	}

	return s.ClaimSpotlight(ctx, userID, *tool)
}

// ClaimSpotlight appends the one-time award for tool.
func (s *Service) ClaimSpotlight(ctx context.Context, userID uuid.UUID, tool Tool) (*ClaimResponse, error) {
	if userID == uuid.Nil {
		return nil, ledger.ErrAuthenticationRequired
	}

	entry := NewClaim(userID, tool)
	if err := s.repo.Claim(ctx, userID, tool, entry); err != nil {
		if errors.Is(err, ledger.ErrAlreadyClaimed) {
			s.metrics.Rejected("spotlight", "already_claimed")
		}
		return nil, err
	}

	s.metrics.Awarded(string(ledger.KindSpotlight), tool.PointsReward)
	s.notifier.PointsUpdated(ctx, userID, ledger.KindSpotlight)

	logger.FromContext(ctx).Info().
		Str("user_id", userID.String()).
		Str("tool", tool.Name).
		Int("points", tool.PointsReward).
		Msg("Spotlight reward claimed")

	return &ClaimResponse{ToolID: tool.ID, PointsAwarded: tool.PointsReward, CTAURL: tool.CTAURL}, nil
}

// Create adds a spotlight tool, featuring it if requested
func (s *Service) Create(ctx context.Context, req *CreateToolRequest) (*Tool, error) {
	t := &Tool{
		Name:         req.Name,
		Description:  req.Description,
		CTALabel:     req.CTALabel,
		CTAURL:       req.CTAURL,
		PointsReward: req.PointsReward,
		IsFeatured:   req.Featured,
	}
	if req.IconURL != "" {
		icon := req.IconURL
		t.IconURL = &icon
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Feature makes id the featured tool
func (s *Service) Feature(ctx context.Context, id uuid.UUID) (*Tool, error) {
	if err := s.repo.Feature(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}
