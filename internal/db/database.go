package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	_ "modernc.org/sqlite"             // registers the "sqlite" driver

	"github.com/yigit/gradebook/internal/config"
	"github.com/yigit/gradebook/internal/pkg/logger"
)

// Dialect identifies the SQL flavour spoken by the underlying store
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// Querier is satisfied by both *sql.DB and *sql.Tx so repositories can run
// inside or outside a transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Database wraps the connection pool together with its dialect
type Database struct {
	*sql.DB
	Dialect Dialect
}

// NewDatabase opens the store selected by cfg.Database.Driver and verifies
// the connection.
func NewDatabase(cfg *config.Config) (*Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var (
		driverName string
		dialect    Dialect
	)
	switch cfg.Database.Driver {
	case config.DriverSQLite:
		driverName, dialect = "sqlite", DialectSQLite
	case config.DriverPostgres:
		driverName, dialect = "pgx", DialectPostgres
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	conn, err := sql.Open(driverName, cfg.DataSourceName())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if dialect == DialectSQLite {
		// a single writer avoids SQLITE_BUSY between pooled connections
		conn.SetMaxOpenConns(1)
	} else {
		conn.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		conn.SetMaxIdleConns(cfg.Database.MaxIdleConns)

		maxLifetime, err := time.ParseDuration(cfg.Database.ConnMaxLifetime)
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to parse connection max lifetime: %w", err)
		}
		conn.SetConnMaxLifetime(maxLifetime)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to establish database connection: %w", err)
	}

	return &Database{DB: conn, Dialect: dialect}, nil
}

// Placeholder returns the bind-variable format squirrel should use
func (d *Database) Placeholder() sq.PlaceholderFormat {
	return PlaceholderFor(d.Dialect)
}

// PlaceholderFor maps a dialect to its squirrel placeholder format
func PlaceholderFor(dialect Dialect) sq.PlaceholderFormat {
	if dialect == DialectPostgres {
		return sq.Dollar
	}
	return sq.Question
}

// Close closes the underlying pool
func (d *Database) Close() {
	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close database")
		}
	}
}

// TransactionFn is a function that executes within a transaction
type TransactionFn func(ctx context.Context, tx *sql.Tx) error

// WithTransaction runs fn inside a transaction, committing when it returns
// nil and rolling back otherwise.
func (d *Database) WithTransaction(ctx context.Context, fn TransactionFn) error {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
	}

	tx, err := d.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error().Err(rbErr).Msg("Failed to rollback transaction")
			return errors.Join(err, fmt.Errorf("rollback failed: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
