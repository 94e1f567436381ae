package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/maheshsta/corebank/internal/domain"
)

const transactionColumns = `id, sender_account_id, receiver_account_id,
	sender_account_number, receiver_account_number, amount, currency, kind,
	description, status, created_at`

// TransactionFilter narrows a ledger query. Participant is mandatory: the
// history path always scopes to one account, as sender or receiver.
type TransactionFilter struct {
	ParticipantAccountID uuid.UUID
	Kind                 *domain.TransactionKind
	From                 *time.Time
	To                   *time.Time
}

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create appends one ledger entry inside the caller's transaction. Entries
// are never updated or deleted after this insert.
func (r *TransactionRepository) Create(ctx context.Context, tx *sql.Tx, t *domain.Transaction) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO transactions (
			id, sender_account_id, receiver_account_id,
			sender_account_number, receiver_account_number, amount, currency,
			kind, description, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		t.ID, t.SenderAccountID, t.ReceiverAccountID,
		t.SenderAccountNumber, t.ReceiverAccountNumber, t.Amount, t.Currency,
		t.Kind, t.Description, t.Status, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

// Query returns one page of entries matching the filter, newest first, plus
// the total match count so callers can derive page controls. Sort order is
// fixed descending by timestamp.
func (r *TransactionRepository) Query(ctx context.Context, f TransactionFilter, limit, offset int) ([]domain.Transaction, int, error) {
	where, args := buildTransactionWhere(f)

	var total int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions `+where, args...,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("Query: count: %w", err)
	}

	args = append(args, limit, offset)
	rows, err := r.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT %s FROM transactions %s
		ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
			transactionColumns, where, len(args)-1, len(args)),
		args...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("Query: %w", err)
	}
	defer rows.Close()

	var entries []domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("Query: scan: %w", err)
		}
		entries = append(entries, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("Query: rows: %w", err)
	}
	return entries, total, nil
}

// SumDebitedFrom totals the committed transfer amounts sent from an account.
// Used by reconciliation checks and available to limit policies.
func (r *TransactionRepository) SumDebitedFrom(ctx context.Context, accountID uuid.UUID, since time.Time) (int64, error) {
	var sum int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM transactions
		WHERE sender_account_id = $1 AND status = 'completed' AND created_at >= $2`,
		accountID, since,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("SumDebitedFrom: %w", err)
	}
	return sum, nil
}

func buildTransactionWhere(f TransactionFilter) (string, []any) {
	conds := []string{"(sender_account_id = $1 OR receiver_account_id = $1)"}
	args := []any{f.ParticipantAccountID}

	if f.Kind != nil {
		args = append(args, *f.Kind)
		conds = append(conds, fmt.Sprintf("kind = $%d", len(args)))
	}
	if f.From != nil {
		args = append(args, *f.From)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if f.To != nil {
		args = append(args, *f.To)
		conds = append(conds, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	return "WHERE " + strings.Join(conds, " AND "), args
}

func scanTransaction(s scanner) (*domain.Transaction, error) {
	var t domain.Transaction
	err := s.Scan(
		&t.ID, &t.SenderAccountID, &t.ReceiverAccountID,
		&t.SenderAccountNumber, &t.ReceiverAccountNumber, &t.Amount, &t.Currency,
		&t.Kind, &t.Description, &t.Status, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
