package handler

import "net/http"

type AppError struct {
	Status  int
	Code    string
	Message string
}

func (e *AppError) Error() string { return e.Message }

var (
	ErrMissingToken       = &AppError{http.StatusUnauthorized, "MISSING_TOKEN", "Authorization header required"}
	ErrInvalidToken       = &AppError{http.StatusUnauthorized, "INVALID_TOKEN", "Token is invalid or expired"}
	ErrInvalidCredentials = &AppError{http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password"}
	ErrInvalidRequest     = &AppError{http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body"}
	ErrValidationFailed   = &AppError{http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed"}
	ErrResourceNotFound   = &AppError{http.StatusNotFound, "RESOURCE_NOT_FOUND", "Resource not found"}
	ErrInternalError      = &AppError{http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred"}

	ErrInvalidAmount      = &AppError{http.StatusBadRequest, "INVALID_AMOUNT", "Amount must be positive with at most two decimal places"}
	ErrSenderNotFound     = &AppError{http.StatusNotFound, "SENDER_ACCOUNT_NOT_FOUND", "Sender account not found"}
	ErrReceiverNotFound   = &AppError{http.StatusNotFound, "RECEIVER_ACCOUNT_NOT_FOUND", "Receiver account not found"}
	ErrSelfTransfer       = &AppError{http.StatusUnprocessableEntity, "SELF_TRANSFER_NOT_ALLOWED", "Cannot transfer to the same account"}
	ErrAccountFrozen      = &AppError{http.StatusUnprocessableEntity, "ACCOUNT_FROZEN", "Account is frozen"}
	ErrAccountInactive    = &AppError{http.StatusUnprocessableEntity, "ACCOUNT_INACTIVE", "Account is inactive"}
	ErrInsufficientFunds  = &AppError{http.StatusUnprocessableEntity, "INSUFFICIENT_FUNDS", "Insufficient funds"}
	ErrLimitExceeded      = &AppError{http.StatusUnprocessableEntity, "TRANSFER_LIMIT_EXCEEDED", "Transfer limit exceeded"}
	ErrTransferConflict   = &AppError{http.StatusConflict, "TRANSFER_CONFLICT", "A concurrent transfer touched the same account, please retry"}
	ErrEmailTaken         = &AppError{http.StatusConflict, "EMAIL_TAKEN", "Email already registered"}
	ErrAccountNumberTaken = &AppError{http.StatusConflict, "ACCOUNT_NUMBER_TAKEN", "Account number already in use"}
	ErrUnknownKind        = &AppError{http.StatusBadRequest, "UNKNOWN_TRANSACTION_TYPE", "Unknown transaction type"}
	ErrInvalidRange       = &AppError{http.StatusBadRequest, "INVALID_DATE_RANGE", "Start date must not be after end date"}
	ErrInvalidPage        = &AppError{http.StatusBadRequest, "INVALID_PAGINATION", "Page and page size must be positive"}
)
