package database

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"
)

//go:embed seeds/*.sql
var seedFS embed.FS

const seedTable = "seed_migrations"

// Seed applies the embedded reference-data scripts (common codes).
// Tables must already exist; run AutoMigrate first.
func Seed(ctx context.Context, db *gorm.DB) error {
	src, err := iofs.New(seedFS, "seeds")
	if err != nil {
		return fmt.Errorf("open seed source: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}

	var (
		driver  migratedb.Driver
		closeFn = func() {}
	)
	switch db.Dialector.Name() {
	case "postgres":
		conn, err := sqlDB.Conn(ctx)
		if err != nil {
			return fmt.Errorf("acquire connection: %w", err)
		}
		driver, err = postgres.WithConnection(ctx, conn, &postgres.Config{MigrationsTable: seedTable})
		if err != nil {
			conn.Close()
			return fmt.Errorf("seed driver: %w", err)
		}
		closeFn = func() { driver.Close() }
	case "sqlite":
		// sqlite3.Close would close the shared pool, so the driver is left open.
		driver, err = sqlite3.WithInstance(sqlDB, &sqlite3.Config{MigrationsTable: seedTable})
		if err != nil {
			return fmt.Errorf("seed driver: %w", err)
		}
	default:
		return fmt.Errorf("seeding not supported for %q", db.Dialector.Name())
	}
	defer closeFn()

	m, err := migrate.NewWithInstance("iofs", src, db.Dialector.Name(), driver)
	if err != nil {
		return fmt.Errorf("create seeder: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply seeds: %w", err)
	}
	return nil
}
