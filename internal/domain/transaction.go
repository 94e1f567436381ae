package domain

import (
	"time"

	"github.com/google/uuid"
)

type TransactionKind string

const (
	KindCredit   TransactionKind = "credit"
	KindDebit    TransactionKind = "debit"
	KindTransfer TransactionKind = "transfer"
)

func ParseTransactionKind(s string) (TransactionKind, error) {
	switch TransactionKind(s) {
	case KindCredit, KindDebit, KindTransfer:
		return TransactionKind(s), nil
	}
	return "", ErrUnknownKind
}

type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusFailed    TransactionStatus = "failed"
)

// Transaction is one immutable ledger entry. It is written exactly once, in
// the same storage transaction as the two balance mutations it records, and
// never updated afterwards. Account numbers are snapshotted at write time so
// the ledger stays readable on its own.
type Transaction struct {
	ID                    uuid.UUID
	SenderAccountID       uuid.UUID
	ReceiverAccountID     uuid.UUID
	SenderAccountNumber   string
	ReceiverAccountNumber string
	Amount                int64
	Currency              Currency
	Kind                  TransactionKind
	Description           string
	Status                TransactionStatus
	CreatedAt             time.Time
}
