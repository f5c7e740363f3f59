package db

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/AdamBeresnev/pitwall/migrations"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

func Connect(driver, dsn string) (*sqlx.DB, error) {
	conn, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", driver, err)
	}

	if driver == DriverSQLite {
		if _, err := conn.Exec("PRAGMA foreign_keys = ON;"); err != nil {
			conn.Close()
			return nil, err
		}
	}

	slog.Info("database connected", "driver", driver)
	return conn, nil
}

// RunMigrations applies the embedded migrations. The migrate instance is not
// closed since closing it would close conn as well.
func RunMigrations(conn *sqlx.DB) error {
	source, err := iofs.New(migrations.Files, ".")
	if err != nil {
		return fmt.Errorf("failed to open migrations: %w", err)
	}

	var driver database.Driver
	switch conn.DriverName() {
	case DriverSQLite:
		driver, err = sqlite3.WithInstance(conn.DB, &sqlite3.Config{})
	case DriverPostgres:
		driver, err = migratepgx.WithInstance(conn.DB, &migratepgx.Config{})
	default:
		return fmt.Errorf("unsupported driver for migrations: %s", conn.DriverName())
	}
	if err != nil {
		return fmt.Errorf("failed to create migrate driver instance: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, conn.DriverName(), driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}
