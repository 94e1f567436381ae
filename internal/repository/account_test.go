package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maheshsta/corebank/internal/domain"
	"github.com/maheshsta/corebank/internal/repository"
	"github.com/maheshsta/corebank/internal/testutil"
)

func TestAccountCreate_DuplicateNumber(t *testing.T) {
	db := testutil.SetupTestDB(t)
	accounts := repository.NewAccountRepository(db)
	ctx := context.Background()

	alice := testutil.SeedUser(t, db, "alice@test.com", "Alice")
	bob := testutil.SeedUser(t, db, "bob@test.com", "Bob")
	existing := testutil.SeedAccount(t, db, alice.ID, 0)

	err := accounts.Create(ctx, &domain.Account{
		ID:            uuid.New(),
		UserID:        bob.ID,
		AccountNumber: existing.AccountNumber,
		AccountType:   domain.AccountTypeSavings,
		Currency:      domain.CurrencyINR,
		Active:        true,
		Version:       1,
		CreatedAt:     time.Now().UTC(),
	})

	assert.ErrorIs(t, err, domain.ErrAccountNumberTaken)
}

func TestAccountGetByNumber_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	accounts := repository.NewAccountRepository(db)

	_, err := accounts.GetByNumber(context.Background(), "000000000000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAccountUpdateBalance_StaleVersion(t *testing.T) {
	db := testutil.SetupTestDB(t)
	accounts := repository.NewAccountRepository(db)
	ctx := context.Background()

	alice := testutil.SeedUser(t, db, "alice@test.com", "Alice")
	acct := testutil.SeedAccount(t, db, alice.ID, 10000) // version 1

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	defer tx.Rollback()

	require.NoError(t, accounts.UpdateBalance(ctx, tx, acct.ID, 9000, 2))

	// Writing again with the version we already consumed must be refused.
	err = accounts.UpdateBalance(ctx, tx, acct.ID, 8000, 2)
	assert.ErrorIs(t, err, domain.ErrVersionConflict)
	require.NoError(t, tx.Rollback())

	assert.Equal(t, int64(10000), testutil.GetBalance(t, db, acct.ID))
}

func TestAccountSetFrozen(t *testing.T) {
	db := testutil.SetupTestDB(t)
	accounts := repository.NewAccountRepository(db)
	ctx := context.Background()

	alice := testutil.SeedUser(t, db, "alice@test.com", "Alice")
	acct := testutil.SeedAccount(t, db, alice.ID, 0)

	require.NoError(t, accounts.SetFrozen(ctx, acct.ID, true))
	got, err := accounts.GetByID(ctx, acct.ID)
	require.NoError(t, err)
	assert.True(t, got.Frozen)

	err = accounts.SetFrozen(ctx, uuid.New(), true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
