package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/maheshsta/corebank/internal/domain"
	"github.com/maheshsta/corebank/internal/logging"
)

const accountNumberLength = 12

// How many fresh numbers to try before giving up on a pathological run of
// collisions. The keyspace is 10^12, so one retry is already rare.
const maxNumberAttempts = 5

type accountCreator interface {
	GetByOwner(ctx context.Context, userID uuid.UUID) (*domain.Account, error)
	GetByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)
	Create(ctx context.Context, account *domain.Account) error
}

type userReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type AccountService struct {
	accounts accountCreator
	users    userReader
}

func NewAccountService(accounts accountCreator, users userReader) *AccountService {
	return &AccountService{accounts: accounts, users: users}
}

// Open creates the user's account at onboarding: balance zero, a freshly
// generated unique account number, savings by default. The store's unique
// constraint is the collision authority; on ErrAccountNumberTaken we
// generate a new number and try again.
func (s *AccountService) Open(ctx context.Context, userID uuid.UUID, accountType domain.AccountType, currency domain.Currency) (*domain.Account, error) {
	log := logging.FromContext(ctx)

	if !accountType.IsValid() {
		accountType = domain.AccountTypeSavings
	}
	if !currency.IsValid() {
		currency = domain.CurrencyINR
	}

	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		number, err := generateAccountNumber()
		if err != nil {
			return nil, fmt.Errorf("Open: %w", err)
		}

		account := &domain.Account{
			ID:            uuid.New(),
			UserID:        userID,
			AccountNumber: number,
			AccountType:   accountType,
			Balance:       0,
			Currency:      currency,
			Active:        true,
			Frozen:        false,
			Version:       1,
			CreatedAt:     time.Now().UTC(),
		}

		err = s.accounts.Create(ctx, account)
		if err == nil {
			log.Info("account opened",
				"account_id", account.ID,
				"user_id", userID,
				"account_number", number,
			)
			return account, nil
		}
		if errors.Is(err, domain.ErrAccountNumberTaken) {
			continue
		}
		return nil, fmt.Errorf("Open: %w", err)
	}

	return nil, fmt.Errorf("Open: %w", domain.ErrAccountNumberTaken)
}

// Balance returns the caller's own account.
func (s *AccountService) Balance(ctx context.Context, userID uuid.UUID) (*domain.Account, error) {
	account, err := s.accounts.GetByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("Balance: %w", err)
	}
	return account, nil
}

// Lookup resolves an account number ahead of a transfer, returning the
// account together with the holder's name so the caller can confirm the
// receiver before sending funds.
func (s *AccountService) Lookup(ctx context.Context, accountNumber string) (*domain.Account, string, error) {
	account, err := s.accounts.GetByNumber(ctx, accountNumber)
	if err != nil {
		return nil, "", fmt.Errorf("Lookup: %w", err)
	}
	holder, err := s.users.GetByID(ctx, account.UserID)
	if err != nil {
		return nil, "", fmt.Errorf("Lookup: %w", err)
	}
	return account, holder.Name, nil
}

func generateAccountNumber() (string, error) {
	digits := make([]byte, accountNumberLength)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("generateAccountNumber: %w", err)
		}
		digits[i] = '0' + byte(n.Int64())
	}
	return string(digits), nil
}
