// Package persistence manages the PostgreSQL connection pool, schema
// migrations, and the transaction helper the account upsert runs inside.
package persistence

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/auth-account-service/internal/config"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the subset of pgx operations the account repository needs. Both
// the pool and an open transaction satisfy it, so the same repository code
// runs inside and outside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

var _ Querier = (*pgxpool.Pool)(nil)
var _ Querier = (pgx.Tx)(nil)

// PostgresDB wraps the connection pool holding the accounts table.
type PostgresDB struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewPostgresDB applies pending migrations, then opens and verifies the
// connection pool.
func NewPostgresDB(ctx context.Context, logger *slog.Logger, cfg *config.PostgresConfig) (*PostgresDB, error) {
	if err := RunMigrations(logger, cfg.URL, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PostgreSQL connection string: %w", err)
	}

	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MinConns = cfg.MinConns
	poolConfig.MaxConnLifetime = cfg.ConnMaxLifetime
	poolConfig.MaxConnIdleTime = cfg.ConnMaxIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}

	logger.Info("Connected to PostgreSQL")

	return &PostgresDB{
		pool:   pool,
		logger: logger,
	}, nil
}

func (db *PostgresDB) Pool() *pgxpool.Pool {
	return db.pool
}

// Ping reports whether the database is reachable. The health endpoint uses it.
func (db *PostgresDB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

func (db *PostgresDB) Close() {
	db.pool.Close()
	db.logger.Info("Closed PostgreSQL connection")
}

// ExecuteTx runs fn in a transaction, rolling back on error or panic. The
// account upsert uses this so its username lookup and the subsequent insert
// or update commit together.
func (db *PostgresDB) ExecuteTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(ctx)
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("tx err: %v, rb err: %v", err, rbErr)
		}
		return err
	}

	return tx.Commit(ctx)
}
