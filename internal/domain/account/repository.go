package account

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Repository defines account persistence operations. It owns no business
// logic: uniqueness is enforced here only through the storage layer's
// constraints, which reject the losing side of a concurrent claim.
type Repository interface {
	// Add inserts a new record and returns the persisted state.
	// Returns ErrDuplicateUsername when the username constraint rejects the
	// insert, ErrDuplicateAccountID when the id already has a row.
	Add(ctx context.Context, account *Account) (*Account, error)

	// UpdateAccount overwrites the record matched by AccountID.
	// Returns ErrAccountNotFound when no row matches and
	// ErrDuplicateUsername when a rename loses a race on the constraint.
	UpdateAccount(ctx context.Context, account *Account) (*Account, error)

	// GetByAccountID returns the account or ErrAccountNotFound.
	GetByAccountID(ctx context.Context, accountID uuid.UUID) (*Account, error)

	// GetByUsername returns (nil, nil) when no account holds the username.
	GetByUsername(ctx context.Context, username string) (*Account, error)

	// WithTx rebinds the repository to a transaction so a lookup and its
	// dependent write commit atomically.
	WithTx(tx pgx.Tx) Repository
}
