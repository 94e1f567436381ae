package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/maheshsta/corebank/internal/domain"
	"github.com/maheshsta/corebank/internal/repository"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
)

type ledgerQuerier interface {
	Query(ctx context.Context, f repository.TransactionFilter, limit, offset int) ([]domain.Transaction, int, error)
}

type accountResolver interface {
	GetByOwner(ctx context.Context, userID uuid.UUID) (*domain.Account, error)
}

type HistoryParams struct {
	Page      int
	PageSize  int
	Kind      string
	StartDate *time.Time
	EndDate   *time.Time
}

type HistoryPage struct {
	Items             []domain.Transaction
	CurrentPage       int
	TotalPages        int
	TotalTransactions int
}

// HistoryService is the read side of the ledger: it normalizes raw filter
// and pagination input and always scopes the query to the caller's own
// account, never anyone else's.
type HistoryService struct {
	accounts accountResolver
	ledger   ledgerQuerier
}

func NewHistoryService(accounts accountResolver, ledger ledgerQuerier) *HistoryService {
	return &HistoryService{accounts: accounts, ledger: ledger}
}

func (s *HistoryService) History(ctx context.Context, callerUserID uuid.UUID, p HistoryParams) (*HistoryPage, error) {
	if p.Page == 0 {
		p.Page = defaultPage
	}
	if p.PageSize == 0 {
		p.PageSize = defaultPageSize
	}
	if p.Page < 1 || p.PageSize < 1 {
		return nil, fmt.Errorf("History: %w", domain.ErrInvalidPage)
	}

	var kind *domain.TransactionKind
	if p.Kind != "" {
		k, err := domain.ParseTransactionKind(p.Kind)
		if err != nil {
			return nil, fmt.Errorf("History: %w", err)
		}
		kind = &k
	}

	if p.StartDate != nil && p.EndDate != nil && p.StartDate.After(*p.EndDate) {
		return nil, fmt.Errorf("History: %w", domain.ErrInvalidRange)
	}

	account, err := s.accounts.GetByOwner(ctx, callerUserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("History: %w", domain.ErrSenderNotFound)
		}
		return nil, fmt.Errorf("History: %w", err)
	}

	items, total, err := s.ledger.Query(ctx, repository.TransactionFilter{
		ParticipantAccountID: account.ID,
		Kind:                 kind,
		From:                 p.StartDate,
		To:                   p.EndDate,
	}, p.PageSize, (p.Page-1)*p.PageSize)
	if err != nil {
		return nil, fmt.Errorf("History: %w", err)
	}

	return &HistoryPage{
		Items:             items,
		CurrentPage:       p.Page,
		TotalPages:        (total + p.PageSize - 1) / p.PageSize,
		TotalTransactions: total,
	}, nil
}
