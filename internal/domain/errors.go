package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrSenderNotFound     = errors.New("sender account not found")
	ErrReceiverNotFound   = errors.New("receiver account not found")
	ErrSelfTransfer       = errors.New("cannot transfer to the same account")
	ErrAccountFrozen      = errors.New("account frozen")
	ErrAccountInactive    = errors.New("account inactive")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrLimitExceeded      = errors.New("transfer limit exceeded")
	ErrInvalidAmount      = errors.New("amount must be a positive value with at most two decimal places")
	ErrVersionConflict    = errors.New("concurrent balance mutation detected")
	ErrAccountNumberTaken = errors.New("account number already in use")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUnknownKind        = errors.New("unknown transaction type")
	ErrInvalidRange       = errors.New("start date must not be after end date")
	ErrInvalidPage        = errors.New("page and page size must be positive")
)
