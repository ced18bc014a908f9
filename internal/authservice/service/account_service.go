package service

import (
	"context"

	"github.com/auth-account-service/internal/domain/account"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AccountServiceImpl implements the AccountService interface
type AccountServiceImpl struct {
	accountRepo account.Repository
	txExecutor  TxExecutor
}

// NewAccountService creates a new account service
func NewAccountService(accountRepo account.Repository, txExecutor TxExecutor) AccountService {
	return &AccountServiceImpl{
		accountRepo: accountRepo,
		txExecutor:  txExecutor,
	}
}

// IsUsernameAvailable returns true iff no account currently holds the username
func (s *AccountServiceImpl) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	existing, err := s.accountRepo.GetByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	return existing == nil, nil
}

// IsValidForAccount returns true iff the username is unclaimed or claimed by
// exactly accountID
func (s *AccountServiceImpl) IsValidForAccount(ctx context.Context, username string, accountID uuid.UUID) (bool, error) {
	existing, err := s.accountRepo.GetByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return true, nil
	}
	return existing.AccountID == accountID, nil
}

// Upsert resolves create-vs-update by looking the submission up by username,
// not by account id: an account holding the username is treated as the
// account being renamed, anything else as a fresh claim. The lookup and the
// dependent write run in one transaction so they commit atomically; the
// unique index remains the backstop that fails the loser of a concurrent
// claim, and that failure propagates unreinterpreted.
//
// Callers MUST validate via IsValidForAccount first. Upsert trusts that
// precondition: an unvalidated submission whose username belongs to a
// different account is not detected here. A rename of an existing account
// to a brand-new username also lands in the create branch (the lookup by
// the new name finds nothing), where the primary key rejects the insert.
func (s *AccountServiceImpl) Upsert(ctx context.Context, acc *account.Account) (*UpsertResult, error) {
	var result *UpsertResult

	err := s.txExecutor.ExecuteTx(ctx, func(tx pgx.Tx) error {
		repo := s.accountRepo.WithTx(tx)

		existing, err := repo.GetByUsername(ctx, acc.Username)
		if err != nil {
			return err
		}

		if existing != nil {
			if err := existing.Rename(acc.Username); err != nil {
				return err
			}
			updated, err := repo.UpdateAccount(ctx, existing)
			if err != nil {
				return err
			}
			result = &UpsertResult{Account: updated, Operation: OperationUpdate}
			return nil
		}

		created, err := repo.Add(ctx, acc)
		if err != nil {
			return err
		}
		result = &UpsertResult{Account: created, Operation: OperationCreate}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetAccountByID retrieves an account by its identifier, returns
// account.ErrAccountNotFound if not found
func (s *AccountServiceImpl) GetAccountByID(ctx context.Context, accountID uuid.UUID) (*account.Account, error) {
	return s.accountRepo.GetByAccountID(ctx, accountID)
}
