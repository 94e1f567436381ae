package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/maheshsta/corebank/internal/auth"
	"github.com/maheshsta/corebank/internal/domain"
	"github.com/maheshsta/corebank/internal/logging"

	"github.com/google/uuid"
)

type accountService interface {
	Balance(ctx context.Context, userID uuid.UUID) (*domain.Account, error)
	Lookup(ctx context.Context, accountNumber string) (*domain.Account, string, error)
}

type AccountHandler struct {
	accounts accountService
}

func NewAccountHandler(accounts accountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

type accountDTO struct {
	AccountNumber string    `json:"account_number"`
	AccountType   string    `json:"account_type"`
	Balance       string    `json:"balance"`
	Currency      string    `json:"currency"`
	CreatedAt     time.Time `json:"created_at"`
}

func toAccountDTO(a *domain.Account) accountDTO {
	return accountDTO{
		AccountNumber: a.AccountNumber,
		AccountType:   string(a.AccountType),
		Balance:       domain.FormatAmount(a.Balance),
		Currency:      string(a.Currency),
		CreatedAt:     a.CreatedAt,
	}
}

// Balance returns the caller's own balance, account number, and currency.
func (h *AccountHandler) Balance(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.CallerFromContext(r.Context())
	if !ok {
		RespondAppError(w, ErrMissingToken, nil)
		return
	}

	account, err := h.accounts.Balance(r.Context(), userID)
	if err != nil {
		logging.FromContext(r.Context()).Warn("balance lookup failed", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, map[string]string{
		"balance":        domain.FormatAmount(account.Balance),
		"account_number": account.AccountNumber,
		"currency":       string(account.Currency),
	})
}

// Lookup resolves a receiver account number ahead of a transfer. Only
// non-sensitive fields leave this endpoint.
func (h *AccountHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CallerFromContext(r.Context()); !ok {
		RespondAppError(w, ErrMissingToken, nil)
		return
	}

	account, holderName, err := h.accounts.Lookup(r.Context(), r.PathValue("accountNumber"))
	if err != nil {
		logging.FromContext(r.Context()).Warn("account lookup failed", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, map[string]string{
		"account_number": account.AccountNumber,
		"holder_name":    holderName,
		"currency":       string(account.Currency),
	})
}
