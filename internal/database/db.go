package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/avast/retry-go/v4"
	_ "github.com/go-sql-driver/mysql"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// DB wraps the MySQL connection pool shared by the list store.
type DB struct {
	conn *sql.DB
}

// Config holds database connection configuration.
type Config struct {
	DSN string
}

// NewDB opens a connection pool, waits for the database to become reachable,
// and runs migrations.
func NewDB(ctx context.Context, config Config) (*DB, error) {
	conn, err := sql.Open("mysql", config.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(0)
	conn.SetConnMaxIdleTime(15 * time.Minute)

	// MySQL may still be starting when the server boots; retry the ping
	// before giving up. Request paths never retry.
	err = retry.Do(
		func() error { return conn.PingContext(ctx) },
		retry.Context(ctx),
		retry.Attempts(10),
		retry.Delay(time.Second),
		retry.OnRetry(func(n uint, err error) {
			slog.Warn("database.ping_retry", "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &DB{conn: conn}, nil
}

// runMigrations runs database migrations using Goose
func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("mysql"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	currentVersion, err := goose.GetDBVersion(db)
	if err != nil {
		slog.Warn("database.version_unknown", "error", err)
		currentVersion = 0
	}
	slog.Info("database.migrating", "from_version", currentVersion)

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	newVersion, err := goose.GetDBVersion(db)
	if err != nil {
		return fmt.Errorf("failed to verify migration version: %w", err)
	}
	slog.Info("database.migrated", "version", newVersion)

	return nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Connection returns the underlying database connection
func (db *DB) Connection() *sql.DB {
	return db.conn
}
