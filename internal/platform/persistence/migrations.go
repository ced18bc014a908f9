package persistence

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // PostgreSQL driver
	_ "github.com/golang-migrate/migrate/v4/source/file"       // File source driver
)

// RunMigrations brings the accounts schema up to date, reading migration
// files from migrationsPath. A schema that is already current is not an
// error.
func RunMigrations(logger *slog.Logger, databaseURL string, migrationsPath string) error {
	if migrationsPath == "" {
		return errors.New("migrations path cannot be empty")
	}
	if databaseURL == "" {
		return errors.New("database URL cannot be empty")
	}

	sourceURL := fmt.Sprintf("file://%s", migrationsPath)

	m, err := migrate.New(sourceURL, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil {
		if !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
		logger.Info("Database schema already up to date")
	} else {
		logger.Info("Applied database migrations", "path", migrationsPath)
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return fmt.Errorf("migration source error: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("migration database error: %w", dbErr)
	}

	return nil
}
