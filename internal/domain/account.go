package domain

import (
	"time"

	"github.com/google/uuid"
)

type Currency string

const (
	CurrencyINR Currency = "INR"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

func (c Currency) IsValid() bool {
	switch c {
	case CurrencyINR, CurrencyUSD, CurrencyEUR:
		return true
	}
	return false
}

type AccountType string

const (
	AccountTypeSavings  AccountType = "savings"
	AccountTypeChecking AccountType = "checking"
)

func (t AccountType) IsValid() bool {
	return t == AccountTypeSavings || t == AccountTypeChecking
}

// Account is a customer account. Balance is held in minor units (paise for
// INR) and is only ever mutated inside a transfer's storage transaction.
type Account struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	AccountNumber string
	AccountType   AccountType
	Balance       int64
	Currency      Currency
	Active        bool
	Frozen        bool
	Version       int64
	CreatedAt     time.Time
}
