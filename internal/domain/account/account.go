package account

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrEmptyUsername = errors.New("username cannot be empty")
	ErrNilAccountID  = errors.New("account id cannot be nil")
)

// Account is the persisted entity keyed by a caller-assigned identifier.
// Username is unique across all accounts; a unique index in storage is the
// authoritative backstop for that invariant.
type Account struct {
	AccountID uuid.UUID `json:"account_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewAccount creates an account with the given caller-assigned identifier.
// The identifier is not generated here: the upsert path uses it as the key
// the caller claims a username under.
func NewAccount(accountID uuid.UUID, username string) (*Account, error) {
	if accountID == uuid.Nil {
		return nil, ErrNilAccountID
	}
	if username == "" {
		return nil, ErrEmptyUsername
	}

	now := time.Now()
	return &Account{
		AccountID: accountID,
		Username:  username,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Rename changes the account's username. Uniqueness is not checked here;
// the repository surfaces a constraint violation if the name is taken.
func (a *Account) Rename(username string) error {
	if username == "" {
		return ErrEmptyUsername
	}

	a.Username = username
	a.UpdatedAt = time.Now()
	return nil
}

// ErrAccountNotFound indicates missing account
type ErrAccountNotFound struct {
	AccountID uuid.UUID
}

func (e ErrAccountNotFound) Error() string {
	return "account not found: " + e.AccountID.String()
}

// ErrDuplicateUsername indicates a username uniqueness violation, typically
// the losing side of a concurrent claim rejected by the storage constraint.
type ErrDuplicateUsername struct {
	Username string
}

func (e ErrDuplicateUsername) Error() string {
	return "account with username already exists: " + e.Username
}

// ErrDuplicateAccountID indicates a primary key violation: an insert was
// attempted for an account id that already has a row.
type ErrDuplicateAccountID struct {
	AccountID uuid.UUID
}

func (e ErrDuplicateAccountID) Error() string {
	return "account id already exists: " + e.AccountID.String()
}
