package postgres

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"firmdesk.backend/internal/config"
)

// Migrate applies all pending up migrations from cfg.MigrationsDir.
// A database already at the latest version is not an error.
func Migrate(cfg config.DatabaseConfig) error {
	migrator, err := migrate.New("file://"+cfg.MigrationsDir, cfg.URL())
	if err != nil {
		return fmt.Errorf("init migrator failed: %w", err)
	}
	defer func() {
		_, _ = migrator.Close()
	}()

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return fmt.Errorf("migrate up failed: %w", err)
	}
	return nil
}
