package transfer

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/maheshsta/corebank/internal/domain"
	"github.com/maheshsta/corebank/internal/notify"
)

type accountStore interface {
	GetByOwner(ctx context.Context, userID uuid.UUID) (*domain.Account, error)
	GetByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)
	GetForUpdate(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*domain.Account, error)
	UpdateBalance(ctx context.Context, tx *sql.Tx, id uuid.UUID, newBalance, newVersion int64) error
}

type ledgerStore interface {
	Create(ctx context.Context, tx *sql.Tx, t *domain.Transaction) error
}

type userStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// LimitPolicy is an optional pre-commit hook for rolling-window transfer
// caps. A nil policy disables the check entirely; no cap is configured by
// default. Implementations return domain.ErrLimitExceeded to reject.
type LimitPolicy interface {
	Check(ctx context.Context, senderAccountID uuid.UUID, amount int64) error
}

// Service is the transfer orchestrator. It owns no records; it coordinates
// one atomic unit of work across the account and ledger stores.
type Service struct {
	accounts accountStore
	ledger   ledgerStore
	users    userStore
	limit    LimitPolicy
	notify   *notify.Dispatcher
	db       *sql.DB
}

func NewService(
	accounts accountStore,
	ledger ledgerStore,
	users userStore,
	limit LimitPolicy,
	dispatcher *notify.Dispatcher,
	db *sql.DB,
) *Service {
	return &Service{
		accounts: accounts,
		ledger:   ledger,
		users:    users,
		limit:    limit,
		notify:   dispatcher,
		db:       db,
	}
}
