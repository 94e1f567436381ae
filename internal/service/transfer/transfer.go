package transfer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/maheshsta/corebank/internal/domain"
	"github.com/maheshsta/corebank/internal/logging"
)

type Request struct {
	SenderUserID          uuid.UUID
	ReceiverAccountNumber string
	Amount                int64
	Description           string
}

type Result struct {
	Transaction        *domain.Transaction
	NewSenderBalance   int64
	NewReceiverBalance int64
}

// Transfer moves Amount from the caller's account to the receiver's and
// records one completed ledger entry, all-or-nothing. A non-nil error means
// no durable state changed; a nil error means both balances and the ledger
// row are committed before this returns. Notifications go out after commit
// and never influence the outcome.
func (s *Service) Transfer(ctx context.Context, req Request) (*Result, error) {
	log := logging.FromContext(ctx)

	if req.Amount <= 0 {
		return nil, fmt.Errorf("Transfer: %w", domain.ErrInvalidAmount)
	}

	sender, err := s.accounts.GetByOwner(ctx, req.SenderUserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("Transfer: %w", domain.ErrSenderNotFound)
		}
		return nil, fmt.Errorf("Transfer: %w", err)
	}

	if err := verifyUsable(sender); err != nil {
		return nil, fmt.Errorf("Transfer: sender: %w", err)
	}

	receiver, err := s.accounts.GetByNumber(ctx, req.ReceiverAccountNumber)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("Transfer: %w", domain.ErrReceiverNotFound)
		}
		return nil, fmt.Errorf("Transfer: %w", err)
	}

	if sender.AccountNumber == receiver.AccountNumber {
		return nil, fmt.Errorf("Transfer: %w", domain.ErrSelfTransfer)
	}

	if sender.Balance < req.Amount {
		return nil, fmt.Errorf("Transfer: %w", domain.ErrInsufficientFunds)
	}

	if s.limit != nil {
		if err := s.limit.Check(ctx, sender.ID, req.Amount); err != nil {
			return nil, fmt.Errorf("Transfer: %w", err)
		}
	}

	res, err := s.execute(ctx, req, sender.ID, receiver.ID)
	if err != nil {
		return nil, fmt.Errorf("Transfer: %w", err)
	}

	log.Info("transfer completed",
		"transaction_id", res.Transaction.ID,
		"sender_account", res.Transaction.SenderAccountNumber,
		"receiver_account", res.Transaction.ReceiverAccountNumber,
		"amount", req.Amount,
		"currency", res.Transaction.Currency,
	)

	s.dispatchNotices(context.WithoutCancel(ctx), res)

	return res, nil
}

// execute runs the atomic unit: lock both accounts in a fixed global order,
// re-check the preconditions under the locks, debit, credit, append the
// ledger entry, commit. Any failure rolls the whole unit back.
func (s *Service) execute(ctx context.Context, req Request, senderID, receiverID uuid.UUID) (*Result, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("execute: begin tx: %w", err)
	}
	defer tx.Rollback()

	locked, err := s.lockAccountsInOrder(ctx, tx, senderID, receiverID)
	if err != nil {
		return nil, fmt.Errorf("execute: %w", err)
	}
	sender, receiver := locked[senderID], locked[receiverID]

	// The world may have moved between the unlocked reads and here.
	if err := verifyUsable(sender); err != nil {
		return nil, fmt.Errorf("execute: sender: %w", err)
	}
	if sender.Balance < req.Amount {
		return nil, fmt.Errorf("execute: %w", domain.ErrInsufficientFunds)
	}

	if err := s.accounts.UpdateBalance(ctx, tx, sender.ID, sender.Balance-req.Amount, sender.Version+1); err != nil {
		return nil, fmt.Errorf("execute: debit sender: %w", err)
	}
	if err := s.accounts.UpdateBalance(ctx, tx, receiver.ID, receiver.Balance+req.Amount, receiver.Version+1); err != nil {
		return nil, fmt.Errorf("execute: credit receiver: %w", err)
	}

	entry := &domain.Transaction{
		ID:                    uuid.New(),
		SenderAccountID:       sender.ID,
		ReceiverAccountID:     receiver.ID,
		SenderAccountNumber:   sender.AccountNumber,
		ReceiverAccountNumber: receiver.AccountNumber,
		Amount:                req.Amount,
		Currency:              sender.Currency,
		Kind:                  domain.KindTransfer,
		Description:           req.Description,
		Status:                domain.StatusCompleted,
		CreatedAt:             time.Now().UTC(),
	}
	if err := s.ledger.Create(ctx, tx, entry); err != nil {
		return nil, fmt.Errorf("execute: ledger entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("execute: commit: %w", err)
	}

	return &Result{
		Transaction:        entry,
		NewSenderBalance:   sender.Balance - req.Amount,
		NewReceiverBalance: receiver.Balance + req.Amount,
	}, nil
}

func verifyUsable(acct *domain.Account) error {
	if acct.Frozen {
		return domain.ErrAccountFrozen
	}
	if !acct.Active {
		return domain.ErrAccountInactive
	}
	return nil
}

// lockAccountsInOrder acquires both row locks in ascending UUID order so two
// opposite-direction transfers over the same pair cannot deadlock.
func (s *Service) lockAccountsInOrder(ctx context.Context, tx *sql.Tx, ids ...uuid.UUID) (map[uuid.UUID]*domain.Account, error) {
	sorted := make([]uuid.UUID, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].String() < sorted[j].String()
	})

	result := make(map[uuid.UUID]*domain.Account, len(ids))
	for _, id := range sorted {
		acct, err := s.accounts.GetForUpdate(ctx, tx, id)
		if err != nil {
			return nil, fmt.Errorf("lockAccountsInOrder: %w", err)
		}
		result[id] = acct
	}
	return result, nil
}

// dispatchNotices sends best-effort debit/credit alerts to both parties.
// Every failure path here ends in a log line; the committed transfer is
// already final.
func (s *Service) dispatchNotices(ctx context.Context, res *Result) {
	if s.notify == nil {
		return
	}

	t := res.Transaction
	go func() {
		log := logging.FromContext(ctx)

		senderUser, receiverUser, err := s.resolveParties(ctx, t)
		if err != nil {
			log.Error("notification recipient lookup failed", "transaction_id", t.ID, "error", err)
			return
		}

		amount := domain.FormatAmount(t.Amount)
		s.notify.Dispatch(ctx, senderUser.Email,
			"Funds Transfer Alert - Debit",
			fmt.Sprintf("Dear %s, %s %s has been debited from your account (%s) for a transfer to %s. Your new balance is %s %s. Description: %s. Transaction ID: %s.",
				senderUser.Name, t.Currency, amount, t.SenderAccountNumber, t.ReceiverAccountNumber,
				t.Currency, domain.FormatAmount(res.NewSenderBalance), orNA(t.Description), t.ID,
			))
		s.notify.Dispatch(ctx, receiverUser.Email,
			"Funds Transfer Alert - Credit",
			fmt.Sprintf("Dear %s, %s %s has been credited to your account (%s) from %s. Your new balance is %s %s. Description: %s. Transaction ID: %s.",
				receiverUser.Name, t.Currency, amount, t.ReceiverAccountNumber, t.SenderAccountNumber,
				t.Currency, domain.FormatAmount(res.NewReceiverBalance), orNA(t.Description), t.ID,
			))
	}()
}

func (s *Service) resolveParties(ctx context.Context, t *domain.Transaction) (*domain.User, *domain.User, error) {
	senderAcct, err := s.accounts.GetByNumber(ctx, t.SenderAccountNumber)
	if err != nil {
		return nil, nil, fmt.Errorf("resolveParties: %w", err)
	}
	receiverAcct, err := s.accounts.GetByNumber(ctx, t.ReceiverAccountNumber)
	if err != nil {
		return nil, nil, fmt.Errorf("resolveParties: %w", err)
	}

	senderUser, err := s.users.GetByID(ctx, senderAcct.UserID)
	if err != nil {
		return nil, nil, fmt.Errorf("resolveParties: %w", err)
	}
	receiverUser, err := s.users.GetByID(ctx, receiverAcct.UserID)
	if err != nil {
		return nil, nil, fmt.Errorf("resolveParties: %w", err)
	}
	return senderUser, receiverUser, nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
