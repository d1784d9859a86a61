package ledger

import (
	"context"

	"github.com/google/uuid"
)

// Summary is the points card: balance plus milestone progress.
type Summary struct {
	Balance  int      `json:"balance"`
	Progress Progress `json:"progress"`
}

// Service exposes read operations over the ledger.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Balance derives the user's balance from the full transaction log.
func (s *Service) Balance(ctx context.Context, userID uuid.UUID) (*Summary, error) {
	if userID == uuid.Nil {
		return nil, ErrAuthenticationRequired
	}

	txs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	balance := ComputeBalance(txs)
	return &Summary{Balance: balance, Progress: ProgressFor(balance)}, nil
}

// History lists the user's transactions newest first.
func (s *Service) History(ctx context.Context, userID uuid.UUID, p Pagination) ([]Transaction, int, error) {
	if userID == uuid.Nil {
		return nil, 0, ErrAuthenticationRequired
	}
	return s.repo.Page(ctx, userID, p.Normalize())
}
