// Package memory provides an in-memory account repository for tests and
// local development. It enforces the same primary-key and unique-username
// backstop as the PostgreSQL schema, so race behavior around concurrent
// username claims can be exercised without a database.
package memory

import (
	"context"
	"sync"

	"github.com/auth-account-service/internal/domain/account"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AccountRepository is a mutex-guarded map-backed account.Repository
type AccountRepository struct {
	mu         sync.Mutex
	byID       map[uuid.UUID]*account.Account
	byUsername map[string]uuid.UUID
}

// NewAccountRepository creates an empty in-memory account repository
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		byID:       make(map[uuid.UUID]*account.Account),
		byUsername: make(map[string]uuid.UUID),
	}
}

// WithTx returns the repository itself: each operation commits atomically
// under the mutex, so there is no separate transaction to bind to.
func (r *AccountRepository) WithTx(tx pgx.Tx) account.Repository {
	return r
}

// Add inserts a new record, rejecting duplicate ids and usernames the way
// the SQL constraints would.
func (r *AccountRepository) Add(ctx context.Context, acc *account.Account) (*account.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[acc.AccountID]; exists {
		return nil, account.ErrDuplicateAccountID{AccountID: acc.AccountID}
	}
	if _, taken := r.byUsername[acc.Username]; taken {
		return nil, account.ErrDuplicateUsername{Username: acc.Username}
	}

	stored := *acc
	r.byID[stored.AccountID] = &stored
	r.byUsername[stored.Username] = stored.AccountID
	return &stored, nil
}

// UpdateAccount overwrites the record matched by AccountID, rejecting a
// rename onto a username held by a different account.
func (r *AccountRepository) UpdateAccount(ctx context.Context, acc *account.Account) (*account.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.byID[acc.AccountID]
	if !exists {
		return nil, account.ErrAccountNotFound{AccountID: acc.AccountID}
	}
	if holder, taken := r.byUsername[acc.Username]; taken && holder != acc.AccountID {
		return nil, account.ErrDuplicateUsername{Username: acc.Username}
	}

	delete(r.byUsername, current.Username)
	stored := *acc
	r.byID[stored.AccountID] = &stored
	r.byUsername[stored.Username] = stored.AccountID
	return &stored, nil
}

// GetByAccountID returns the account or account.ErrAccountNotFound
func (r *AccountRepository) GetByAccountID(ctx context.Context, accountID uuid.UUID) (*account.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	acc, exists := r.byID[accountID]
	if !exists {
		return nil, account.ErrAccountNotFound{AccountID: accountID}
	}
	found := *acc
	return &found, nil
}

// GetByUsername returns (nil, nil) when no account holds the username
func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*account.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, taken := r.byUsername[username]
	if !taken {
		return nil, nil
	}
	found := *r.byID[id]
	return &found, nil
}

// Len reports the number of stored accounts. Test helper.
func (r *AccountRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

// TxExecutor satisfies service.TxExecutor for the in-memory repository.
// There is no transaction to open: the repository's per-operation mutex is
// the whole locking discipline, and the unique-constraint backstop inside
// Add/UpdateAccount decides races, mirroring how the database constraint
// decides them under read committed.
type TxExecutor struct{}

// ExecuteTx runs fn with a nil transaction
func (TxExecutor) ExecuteTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

var _ account.Repository = (*AccountRepository)(nil)
