package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maheshsta/corebank/internal/domain"
)

type collidingStore struct {
	collisions int
	created    *domain.Account
}

func (s *collidingStore) GetByOwner(_ context.Context, _ uuid.UUID) (*domain.Account, error) {
	return nil, domain.ErrNotFound
}

func (s *collidingStore) GetByNumber(_ context.Context, _ string) (*domain.Account, error) {
	return nil, domain.ErrNotFound
}

func (s *collidingStore) Create(_ context.Context, account *domain.Account) error {
	if s.collisions > 0 {
		s.collisions--
		return domain.ErrAccountNumberTaken
	}
	s.created = account
	return nil
}

func TestOpen_Defaults(t *testing.T) {
	store := &collidingStore{}
	svc := NewAccountService(store, nil)
	userID := uuid.New()

	account, err := svc.Open(context.Background(), userID, "", "")

	require.NoError(t, err)
	assert.Equal(t, userID, account.UserID)
	assert.Equal(t, domain.AccountTypeSavings, account.AccountType)
	assert.Equal(t, domain.CurrencyINR, account.Currency)
	assert.Equal(t, int64(0), account.Balance)
	assert.True(t, account.Active)
	assert.False(t, account.Frozen)
	assert.Len(t, account.AccountNumber, 12)
	for _, c := range account.AccountNumber {
		assert.True(t, c >= '0' && c <= '9')
	}
}

func TestOpen_RetriesOnNumberCollision(t *testing.T) {
	store := &collidingStore{collisions: 2}
	svc := NewAccountService(store, nil)

	account, err := svc.Open(context.Background(), uuid.New(), domain.AccountTypeChecking, domain.CurrencyINR)

	require.NoError(t, err)
	require.NotNil(t, store.created)
	assert.Equal(t, account.AccountNumber, store.created.AccountNumber)
	assert.Equal(t, domain.AccountTypeChecking, account.AccountType)
}

func TestOpen_GivesUpAfterRepeatedCollisions(t *testing.T) {
	store := &collidingStore{collisions: maxNumberAttempts}
	svc := NewAccountService(store, nil)

	_, err := svc.Open(context.Background(), uuid.New(), "", "")
	assert.ErrorIs(t, err, domain.ErrAccountNumberTaken)
}
