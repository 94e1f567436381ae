package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/maheshsta/corebank/internal/auth"
	"github.com/maheshsta/corebank/internal/domain"
	"github.com/maheshsta/corebank/internal/logging"
	"github.com/maheshsta/corebank/internal/service/transfer"
)

type transferService interface {
	Transfer(ctx context.Context, req transfer.Request) (*transfer.Result, error)
}

type TransferHandler struct {
	transfers transferService
}

func NewTransferHandler(transfers transferService) *TransferHandler {
	return &TransferHandler{transfers: transfers}
}

type createTransferRequest struct {
	ReceiverAccountNumber string `json:"receiver_account_number"`
	Amount                string `json:"amount"`
	Description           string `json:"description"`
}

func (r createTransferRequest) Validate() []FieldError {
	var errs []FieldError
	if r.ReceiverAccountNumber == "" {
		errs = append(errs, FieldError{Field: "receiver_account_number", Message: "required"})
	}
	if r.Amount == "" {
		errs = append(errs, FieldError{Field: "amount", Message: "required"})
	}
	return errs
}

type transferResponse struct {
	TransactionID uuid.UUID `json:"transaction_id"`
	NewBalance    string    `json:"new_balance"`
	Currency      string    `json:"currency"`
}

func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logging.FromContext(r.Context())

	userID, ok := auth.CallerFromContext(r.Context())
	if !ok {
		RespondAppError(w, ErrMissingToken, nil)
		return
	}

	var req createTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}
	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	// Amounts arrive as decimal strings and become minor units here; the
	// engine never touches binary floating point.
	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	res, err := h.transfers.Transfer(r.Context(), transfer.Request{
		SenderUserID:          userID,
		ReceiverAccountNumber: req.ReceiverAccountNumber,
		Amount:                amount,
		Description:           req.Description,
	})
	if err != nil {
		log.Warn("transfer rejected", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, transferResponse{
		TransactionID: res.Transaction.ID,
		NewBalance:    domain.FormatAmount(res.NewSenderBalance),
		Currency:      string(res.Transaction.Currency),
	})
}
