// Package postgres provides the PostgreSQL implementation of the account
// repository. The unique index on username is the authoritative backstop for
// the uniqueness invariant: constraint violations from lost races are mapped
// to distinct domain errors rather than generic failures.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/auth-account-service/internal/domain/account"
	"github.com/auth-account-service/internal/platform/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error code for unique_violation.
const uniqueViolationCode = "23505"

// Constraint names from the accounts table migration.
const (
	accountsPKeyConstraint     = "accounts_pkey"
	accountsUsernameConstraint = "accounts_username_key"
)

// AccountRepository implements the account.Repository interface for PostgreSQL
type AccountRepository struct {
	querier persistence.Querier // Can be *pgxpool.Pool or pgx.Tx
	logger  *slog.Logger
}

// NewAccountRepository creates a new PostgreSQL account repository.
// It expects db.Pool() to satisfy persistence.Querier.
func NewAccountRepository(logger *slog.Logger, db *persistence.PostgresDB) account.Repository {
	return &AccountRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx rebinds the repository to the given transaction so that a username
// lookup and its dependent insert/update commit atomically.
func (r *AccountRepository) WithTx(tx pgx.Tx) account.Repository {
	return &AccountRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Add inserts a new account row. A concurrent claim of the same username is
// rejected by the unique index and surfaced as ErrDuplicateUsername; an
// insert under an id that already has a row surfaces ErrDuplicateAccountID.
func (r *AccountRepository) Add(ctx context.Context, acc *account.Account) (*account.Account, error) {
	query := `
		INSERT INTO accounts (account_id, username, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.querier.Exec(ctx, query,
		acc.AccountID,
		acc.Username,
		acc.CreatedAt,
		acc.UpdatedAt,
	)
	if err != nil {
		if dupErr := mapUniqueViolation(err, acc); dupErr != nil {
			r.logger.Warn("Insert rejected by constraint", "account_id", acc.AccountID.String(), "error", dupErr)
			return nil, dupErr
		}
		r.logger.Error("Failed to add account", "error", err)
		return nil, fmt.Errorf("failed to add account: %w", err)
	}

	return acc, nil
}

// UpdateAccount overwrites the row matched by AccountID. Renaming onto a
// username claimed by another row loses to the unique index and surfaces
// ErrDuplicateUsername.
func (r *AccountRepository) UpdateAccount(ctx context.Context, acc *account.Account) (*account.Account, error) {
	query := `
		UPDATE accounts
		SET username = $1, updated_at = $2
		WHERE account_id = $3
	`

	result, err := r.querier.Exec(ctx, query,
		acc.Username,
		acc.UpdatedAt,
		acc.AccountID,
	)
	if err != nil {
		if dupErr := mapUniqueViolation(err, acc); dupErr != nil {
			r.logger.Warn("Update rejected by constraint", "account_id", acc.AccountID.String(), "error", dupErr)
			return nil, dupErr
		}
		r.logger.Error("Failed to update account", "account_id", acc.AccountID.String(), "error", err)
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	if result.RowsAffected() == 0 {
		return nil, account.ErrAccountNotFound{AccountID: acc.AccountID}
	}

	return acc, nil
}

// GetByAccountID retrieves an account by its identifier
func (r *AccountRepository) GetByAccountID(ctx context.Context, accountID uuid.UUID) (*account.Account, error) {
	query := `
		SELECT account_id, username, created_at, updated_at
		FROM accounts
		WHERE account_id = $1
	`

	var acc account.Account
	err := r.querier.QueryRow(ctx, query, accountID).Scan(
		&acc.AccountID,
		&acc.Username,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, account.ErrAccountNotFound{AccountID: accountID}
		}
		r.logger.Error("Failed to get account", "account_id", accountID.String(), "error", err)
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return &acc, nil
}

// GetByUsername retrieves the account holding the given username.
// Returns (nil, nil) when no account holds it; the service's availability
// and self-exclusion predicates key on that.
func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*account.Account, error) {
	query := `
		SELECT account_id, username, created_at, updated_at
		FROM accounts
		WHERE username = $1
	`

	var acc account.Account
	err := r.querier.QueryRow(ctx, query, username).Scan(
		&acc.AccountID,
		&acc.Username,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get account by username", "username", username, "error", err)
		return nil, fmt.Errorf("failed to get account by username: %w", err)
	}

	return &acc, nil
}

// mapUniqueViolation translates a 23505 from the accounts table into the
// matching domain error, or returns nil for any other failure.
func mapUniqueViolation(err error, acc *account.Account) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolationCode {
		return nil
	}

	switch pgErr.ConstraintName {
	case accountsUsernameConstraint:
		return account.ErrDuplicateUsername{Username: acc.Username}
	case accountsPKeyConstraint:
		return account.ErrDuplicateAccountID{AccountID: acc.AccountID}
	}
	return account.ErrDuplicateUsername{Username: acc.Username}
}
