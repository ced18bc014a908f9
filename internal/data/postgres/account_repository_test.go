package postgres

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/auth-account-service/internal/domain/account"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func testAccount() *account.Account {
	now := time.Now()
	return &account.Account{
		AccountID: uuid.New(),
		Username:  "alice123",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestAccountRepository_Add(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &AccountRepository{querier: mock, logger: logger}
	acc := testAccount()

	query := `
		INSERT INTO accounts \(account_id, username, created_at, updated_at\)
		VALUES \(\$1, \$2, \$3, \$4\)
	`

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(acc.AccountID, acc.Username, acc.CreatedAt, acc.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		persisted, err := repo.Add(ctx, acc)
		assert.NoError(t, err)
		assert.Equal(t, acc, persisted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("username constraint violation", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: accountsUsernameConstraint}
		mock.ExpectExec(query).
			WithArgs(acc.AccountID, acc.Username, acc.CreatedAt, acc.UpdatedAt).
			WillReturnError(pgErr)

		persisted, err := repo.Add(ctx, acc)
		assert.Nil(t, persisted)
		var dup account.ErrDuplicateUsername
		assert.ErrorAs(t, err, &dup)
		assert.Equal(t, acc.Username, dup.Username)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("primary key violation", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: accountsPKeyConstraint}
		mock.ExpectExec(query).
			WithArgs(acc.AccountID, acc.Username, acc.CreatedAt, acc.UpdatedAt).
			WillReturnError(pgErr)

		persisted, err := repo.Add(ctx, acc)
		assert.Nil(t, persisted)
		var dup account.ErrDuplicateAccountID
		assert.ErrorAs(t, err, &dup)
		assert.Equal(t, acc.AccountID, dup.AccountID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure", func(t *testing.T) {
		expectedErr := errors.New("db error")
		mock.ExpectExec(query).
			WithArgs(acc.AccountID, acc.Username, acc.CreatedAt, acc.UpdatedAt).
			WillReturnError(expectedErr)

		persisted, err := repo.Add(ctx, acc)
		assert.Nil(t, persisted)
		assert.Contains(t, err.Error(), "failed to add account")
		assert.ErrorIs(t, err, expectedErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAccountRepository_UpdateAccount(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &AccountRepository{querier: mock, logger: logger}
	acc := testAccount()

	query := `
		UPDATE accounts
		SET username = \$1, updated_at = \$2
		WHERE account_id = \$3
	`

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(acc.Username, acc.UpdatedAt, acc.AccountID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		persisted, err := repo.UpdateAccount(ctx, acc)
		assert.NoError(t, err)
		assert.Equal(t, acc, persisted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(acc.Username, acc.UpdatedAt, acc.AccountID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		persisted, err := repo.UpdateAccount(ctx, acc)
		assert.Nil(t, persisted)
		var notFound account.ErrAccountNotFound
		assert.ErrorAs(t, err, &notFound)
		assert.Equal(t, acc.AccountID, notFound.AccountID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rename loses race on constraint", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: accountsUsernameConstraint}
		mock.ExpectExec(query).
			WithArgs(acc.Username, acc.UpdatedAt, acc.AccountID).
			WillReturnError(pgErr)

		persisted, err := repo.UpdateAccount(ctx, acc)
		assert.Nil(t, persisted)
		var dup account.ErrDuplicateUsername
		assert.ErrorAs(t, err, &dup)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAccountRepository_GetByAccountID(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &AccountRepository{querier: mock, logger: logger}
	expected := testAccount()

	query := `
		SELECT account_id, username, created_at, updated_at
		FROM accounts
		WHERE account_id = \$1
	`

	t.Run("success", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"account_id", "username", "created_at", "updated_at"}).
			AddRow(expected.AccountID, expected.Username, expected.CreatedAt, expected.UpdatedAt)
		mock.ExpectQuery(query).WithArgs(expected.AccountID).WillReturnRows(rows)

		acc, err := repo.GetByAccountID(ctx, expected.AccountID)
		assert.NoError(t, err)
		assert.Equal(t, expected, acc)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(expected.AccountID).WillReturnError(pgx.ErrNoRows)

		acc, err := repo.GetByAccountID(ctx, expected.AccountID)
		assert.Nil(t, acc)
		var notFound account.ErrAccountNotFound
		assert.ErrorAs(t, err, &notFound)
		assert.Equal(t, expected.AccountID, notFound.AccountID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAccountRepository_GetByUsername(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &AccountRepository{querier: mock, logger: logger}
	expected := testAccount()

	query := `
		SELECT account_id, username, created_at, updated_at
		FROM accounts
		WHERE username = \$1
	`

	t.Run("success", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"account_id", "username", "created_at", "updated_at"}).
			AddRow(expected.AccountID, expected.Username, expected.CreatedAt, expected.UpdatedAt)
		mock.ExpectQuery(query).WithArgs(expected.Username).WillReturnRows(rows)

		acc, err := repo.GetByUsername(ctx, expected.Username)
		assert.NoError(t, err)
		assert.Equal(t, expected, acc)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unclaimed username returns nil without error", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs("nobody123").WillReturnError(pgx.ErrNoRows)

		acc, err := repo.GetByUsername(ctx, "nobody123")
		assert.NoError(t, err)
		assert.Nil(t, acc)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure", func(t *testing.T) {
		expectedErr := errors.New("db error")
		mock.ExpectQuery(query).WithArgs(expected.Username).WillReturnError(expectedErr)

		acc, err := repo.GetByUsername(ctx, expected.Username)
		assert.Nil(t, acc)
		assert.ErrorIs(t, err, expectedErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAccountRepository_WithTx(t *testing.T) {
	logger := newTestLogger()
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := &AccountRepository{querier: mockPool, logger: logger}

	mockPool.ExpectBegin()
	pgxTx, err := mockPool.Begin(context.Background())
	require.NoError(t, err)

	txRepo := repo.WithTx(pgxTx)
	require.NotNil(t, txRepo)

	txRepoImpl, ok := txRepo.(*AccountRepository)
	require.True(t, ok)
	assert.Equal(t, pgxTx, txRepoImpl.querier, "querier in new repo should be the transaction")
	assert.Equal(t, logger, txRepoImpl.logger)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}
