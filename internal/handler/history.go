package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/maheshsta/corebank/internal/auth"
	"github.com/maheshsta/corebank/internal/domain"
	"github.com/maheshsta/corebank/internal/logging"
	"github.com/maheshsta/corebank/internal/service"
)

type historyService interface {
	History(ctx context.Context, callerUserID uuid.UUID, p service.HistoryParams) (*service.HistoryPage, error)
}

type HistoryHandler struct {
	history historyService
}

func NewHistoryHandler(history historyService) *HistoryHandler {
	return &HistoryHandler{history: history}
}

type transactionDTO struct {
	ID                    uuid.UUID `json:"id"`
	SenderAccountNumber   string    `json:"sender_account_number"`
	ReceiverAccountNumber string    `json:"receiver_account_number"`
	Amount                string    `json:"amount"`
	Currency              string    `json:"currency"`
	Type                  string    `json:"type"`
	Description           string    `json:"description"`
	Status                string    `json:"status"`
	CreatedAt             time.Time `json:"created_at"`
}

type historyResponse struct {
	Transactions      []transactionDTO `json:"transactions"`
	CurrentPage       int              `json:"current_page"`
	TotalPages        int              `json:"total_pages"`
	TotalTransactions int              `json:"total_transactions"`
}

func toTransactionDTO(t *domain.Transaction) transactionDTO {
	return transactionDTO{
		ID:                    t.ID,
		SenderAccountNumber:   t.SenderAccountNumber,
		ReceiverAccountNumber: t.ReceiverAccountNumber,
		Amount:                domain.FormatAmount(t.Amount),
		Currency:              string(t.Currency),
		Type:                  string(t.Kind),
		Description:           t.Description,
		Status:                string(t.Status),
		CreatedAt:             t.CreatedAt,
	}
}

func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.CallerFromContext(r.Context())
	if !ok {
		RespondAppError(w, ErrMissingToken, nil)
		return
	}

	params, fields := parseHistoryParams(r)
	if len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	page, err := h.history.History(r.Context(), userID, params)
	if err != nil {
		logging.FromContext(r.Context()).Warn("history query failed", "error", err)
		RespondDomainError(w, err)
		return
	}

	dtos := make([]transactionDTO, len(page.Items))
	for i := range page.Items {
		dtos[i] = toTransactionDTO(&page.Items[i])
	}

	RespondSuccess(w, http.StatusOK, historyResponse{
		Transactions:      dtos,
		CurrentPage:       page.CurrentPage,
		TotalPages:        page.TotalPages,
		TotalTransactions: page.TotalTransactions,
	})
}

func parseHistoryParams(r *http.Request) (service.HistoryParams, []FieldError) {
	var params service.HistoryParams
	var fields []FieldError

	q := r.URL.Query()

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			fields = append(fields, FieldError{Field: "page", Message: "must be an integer"})
		} else {
			params.Page = n
		}
	}
	if v := q.Get("page_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			fields = append(fields, FieldError{Field: "page_size", Message: "must be an integer"})
		} else {
			params.PageSize = n
		}
	}

	params.Kind = q.Get("type")

	if v := q.Get("start_date"); v != "" {
		ts, err := parseDateParam(v, false)
		if err != nil {
			fields = append(fields, FieldError{Field: "start_date", Message: "must be RFC3339 or YYYY-MM-DD"})
		} else {
			params.StartDate = &ts
		}
	}
	if v := q.Get("end_date"); v != "" {
		ts, err := parseDateParam(v, true)
		if err != nil {
			fields = append(fields, FieldError{Field: "end_date", Message: "must be RFC3339 or YYYY-MM-DD"})
		} else {
			params.EndDate = &ts
		}
	}

	return params, fields
}

// parseDateParam accepts RFC3339 timestamps or bare dates. A bare end date
// covers its whole day, keeping both bounds inclusive.
func parseDateParam(s string, endOfDay bool) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	ts, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		ts = ts.Add(24*time.Hour - time.Nanosecond)
	}
	return ts, nil
}
