package testutil

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/maheshsta/corebank/internal/domain"
)

var accountNumberSeq int64 = 100000000000

// nextAccountNumber hands out deterministic, collision-free 12-digit numbers
// for fixtures. Production numbers come from crypto/rand; tests just need
// uniqueness.
func nextAccountNumber() string {
	accountNumberSeq++
	return fmt.Sprintf("%012d", accountNumberSeq)
}

func SeedUser(t *testing.T, db *sql.DB, email, name string) *domain.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Status:       domain.UserStatusActive,
		CreatedAt:    time.Now().UTC(),
	}

	_, err = db.Exec(
		`INSERT INTO users (id, email, name, password_hash, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID, u.Email, u.Name, u.PasswordHash, u.Status, u.CreatedAt,
	)
	if err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return u
}

func SeedAccount(t *testing.T, db *sql.DB, userID uuid.UUID, balance int64) *domain.Account {
	t.Helper()

	a := &domain.Account{
		ID:            uuid.New(),
		UserID:        userID,
		AccountNumber: nextAccountNumber(),
		AccountType:   domain.AccountTypeSavings,
		Balance:       balance,
		Currency:      domain.CurrencyINR,
		Active:        true,
		Frozen:        false,
		Version:       1,
		CreatedAt:     time.Now().UTC(),
	}

	_, err := db.Exec(
		`INSERT INTO accounts (
			id, user_id, account_number, account_type, balance,
			currency, active, frozen, version, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		a.ID, a.UserID, a.AccountNumber, a.AccountType, a.Balance,
		a.Currency, a.Active, a.Frozen, a.Version, a.CreatedAt,
	)
	if err != nil {
		t.Fatalf("seed account for %s: %v", userID, err)
	}
	return a
}

func FreezeAccount(t *testing.T, db *sql.DB, accountID uuid.UUID) {
	t.Helper()
	if _, err := db.Exec(`UPDATE accounts SET frozen = TRUE WHERE id = $1`, accountID); err != nil {
		t.Fatalf("freeze account %s: %v", accountID, err)
	}
}

func GetBalance(t *testing.T, db *sql.DB, accountID uuid.UUID) int64 {
	t.Helper()

	var balance int64
	if err := db.QueryRow(`SELECT balance FROM accounts WHERE id = $1`, accountID).Scan(&balance); err != nil {
		t.Fatalf("get balance %s: %v", accountID, err)
	}
	return balance
}

func CountLedgerEntries(t *testing.T, db *sql.DB, accountID uuid.UUID) int {
	t.Helper()

	var count int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM transactions
		 WHERE sender_account_id = $1 OR receiver_account_id = $1`, accountID,
	).Scan(&count)
	if err != nil {
		t.Fatalf("count ledger entries for %s: %v", accountID, err)
	}
	return count
}

func SumDebits(t *testing.T, db *sql.DB, accountID uuid.UUID) int64 {
	t.Helper()

	var sum int64
	err := db.QueryRow(
		`SELECT COALESCE(SUM(amount), 0) FROM transactions
		 WHERE sender_account_id = $1 AND status = 'completed'`, accountID,
	).Scan(&sum)
	if err != nil {
		t.Fatalf("sum debits for %s: %v", accountID, err)
	}
	return sum
}
