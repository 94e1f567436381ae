package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maheshsta/corebank/internal/domain"
	"github.com/maheshsta/corebank/internal/repository"
)

type stubResolver struct {
	account *domain.Account
	err     error
}

func (s *stubResolver) GetByOwner(_ context.Context, _ uuid.UUID) (*domain.Account, error) {
	return s.account, s.err
}

type capturingQuerier struct {
	gotFilter repository.TransactionFilter
	gotLimit  int
	gotOffset int
	items     []domain.Transaction
	total     int
}

func (q *capturingQuerier) Query(_ context.Context, f repository.TransactionFilter, limit, offset int) ([]domain.Transaction, int, error) {
	q.gotFilter = f
	q.gotLimit = limit
	q.gotOffset = offset
	return q.items, q.total, nil
}

func TestHistory_DefaultsAndScoping(t *testing.T) {
	accountID := uuid.New()
	resolver := &stubResolver{account: &domain.Account{ID: accountID}}
	querier := &capturingQuerier{total: 25}

	svc := NewHistoryService(resolver, querier)
	page, err := svc.History(context.Background(), uuid.New(), HistoryParams{})

	require.NoError(t, err)
	assert.Equal(t, 10, querier.gotLimit, "page size defaults to 10")
	assert.Equal(t, 0, querier.gotOffset, "page defaults to 1")
	assert.Equal(t, accountID, querier.gotFilter.ParticipantAccountID, "query is scoped to the caller's account")
	assert.Nil(t, querier.gotFilter.Kind)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 25, page.TotalTransactions)
}

func TestHistory_OffsetFromPage(t *testing.T) {
	resolver := &stubResolver{account: &domain.Account{ID: uuid.New()}}
	querier := &capturingQuerier{total: 25}

	svc := NewHistoryService(resolver, querier)
	_, err := svc.History(context.Background(), uuid.New(), HistoryParams{Page: 3, PageSize: 7})

	require.NoError(t, err)
	assert.Equal(t, 7, querier.gotLimit)
	assert.Equal(t, 14, querier.gotOffset)
}

func TestHistory_KindFilter(t *testing.T) {
	resolver := &stubResolver{account: &domain.Account{ID: uuid.New()}}
	querier := &capturingQuerier{}

	svc := NewHistoryService(resolver, querier)
	_, err := svc.History(context.Background(), uuid.New(), HistoryParams{Kind: "debit"})

	require.NoError(t, err)
	require.NotNil(t, querier.gotFilter.Kind)
	assert.Equal(t, domain.KindDebit, *querier.gotFilter.Kind)
}

func TestHistory_Rejections(t *testing.T) {
	resolver := &stubResolver{account: &domain.Account{ID: uuid.New()}}
	svc := NewHistoryService(resolver, &capturingQuerier{})

	start := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		params  HistoryParams
		wantErr error
	}{
		{"negative page", HistoryParams{Page: -1}, domain.ErrInvalidPage},
		{"zero is defaulted but negative size is not", HistoryParams{PageSize: -5}, domain.ErrInvalidPage},
		{"unknown kind", HistoryParams{Kind: "refund"}, domain.ErrUnknownKind},
		{"inverted range", HistoryParams{StartDate: &start, EndDate: &end}, domain.ErrInvalidRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.History(context.Background(), uuid.New(), tt.params)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestHistory_NoAccount(t *testing.T) {
	resolver := &stubResolver{err: domain.ErrNotFound}
	svc := NewHistoryService(resolver, &capturingQuerier{})

	_, err := svc.History(context.Background(), uuid.New(), HistoryParams{})
	assert.ErrorIs(t, err, domain.ErrSenderNotFound)
}

func TestHistory_LastPartialPage(t *testing.T) {
	resolver := &stubResolver{account: &domain.Account{ID: uuid.New()}}
	querier := &capturingQuerier{total: 21}

	svc := NewHistoryService(resolver, querier)
	page, err := svc.History(context.Background(), uuid.New(), HistoryParams{Page: 3})

	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalPages, "21 entries at size 10 is three pages")
	assert.Equal(t, 20, querier.gotOffset)
}
