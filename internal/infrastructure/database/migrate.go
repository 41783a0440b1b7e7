package database

import (
	"errors"
	"fmt"

	"dental-clinic-api/config"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RunMigrations applies all pending SQL migrations from the configured
// directory. The slot uniqueness index for appointments lives here, so this
// must run before the server starts accepting writes.
func RunMigrations(db *gorm.DB, cfg config.DBConfig) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	driver, err := migratepg.WithInstance(sqlDB, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", cfg.MigrationsDir),
		cfg.Name,
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logrus.Info("Database schema already up to date")
			return nil
		}
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	logrus.Info("Database migrations applied")
	return nil
}
