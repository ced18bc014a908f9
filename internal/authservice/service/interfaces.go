package service

import (
	"context"

	"github.com/auth-account-service/internal/domain/account"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Operation tags which write path an upsert took
type Operation string

const (
	OperationCreate Operation = "CREATE"
	OperationUpdate Operation = "UPDATE"
)

// UpsertResult pairs the persisted account with the operation that produced
// it. It is transient: it exists so the caller can report the right message.
type UpsertResult struct {
	Account   *account.Account
	Operation Operation
}

// AccountService defines the interface for account operations
type AccountService interface {
	// IsUsernameAvailable reports whether no account currently holds the
	// username. Advisory only: a concurrent writer may claim the name
	// between this check and a later Upsert, so it is never a reservation.
	IsUsernameAvailable(ctx context.Context, username string) (bool, error)

	// IsValidForAccount reports whether the username is unclaimed or
	// already held by exactly accountID. This is the self-exclusion
	// predicate that lets an account re-submit its own username during a
	// rename without tripping the uniqueness rule.
	IsValidForAccount(ctx context.Context, username string, accountID uuid.UUID) (bool, error)

	// Upsert creates or renames an account, keyed by username lookup.
	// Precondition: the caller has validated via IsValidForAccount; Upsert
	// does not re-check it. A lost uniqueness race surfaces as
	// account.ErrDuplicateUsername from the repository.
	Upsert(ctx context.Context, acc *account.Account) (*UpsertResult, error)

	// GetAccountByID retrieves an account by its identifier
	// Returns account.ErrAccountNotFound if the account doesn't exist
	GetAccountByID(ctx context.Context, accountID uuid.UUID) (*account.Account, error)
}

// TxExecutor runs a function inside a single storage transaction. Satisfied
// by persistence.PostgresDB; mocked in tests.
type TxExecutor interface {
	ExecuteTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}
