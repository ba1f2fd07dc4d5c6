package persistence

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/spec-kit/crane-workorders/internal/config"
)

// Store wraps the relational handle shared by the repositories.
type Store struct {
	db      *sqlx.DB
	dialect string
	builder squirrel.StatementBuilderType
}

// Open connects to the configured relational store and verifies it is reachable.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*Store, error) {
	driverName, builder, err := driverFor(cfg.Driver)
	if err != nil {
		return nil, err
	}
	if cfg.DSN == "" {
		return nil, errors.New("database DSN is empty")
	}

	dsn := cfg.DSN
	if cfg.Driver == config.DriverSQLite {
		dsn = sqliteDSN(dsn)
	}

	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxIdleSec > 0 {
		db.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleSec) * time.Second)
	}
	if cfg.ConnMaxLifeSec > 0 {
		db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifeSec) * time.Second)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Driver, err)
	}

	if cfg.Driver == config.DriverSQLite {
		// journal_mode persists in the file and is not supported for in-memory databases.
		_, _ = db.ExecContext(ctx, `PRAGMA journal_mode=WAL`)
	}

	logger.Info("connected to relational store", zap.String("driver", cfg.Driver))
	return &Store{db: db, dialect: cfg.Driver, builder: builder}, nil
}

func driverFor(driver string) (string, squirrel.StatementBuilderType, error) {
	switch driver {
	case config.DriverSQLite:
		return "sqlite3", squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question), nil
	case config.DriverPostgres:
		return "pgx", squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar), nil
	default:
		return "", squirrel.StatementBuilderType{}, fmt.Errorf("unsupported driver %q", driver)
	}
}

// sqliteDSN adds per-connection pragmas unless the caller already set them.
func sqliteDSN(dsn string) string {
	params := url.Values{}
	if !strings.Contains(dsn, "_busy_timeout") {
		params.Set("_busy_timeout", "5000")
	}
	if !strings.Contains(dsn, "_foreign_keys") {
		params.Set("_foreign_keys", "on")
	}
	if len(params) == 0 {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + params.Encode()
}

// DB returns the underlying sqlx handle.
func (s *Store) DB() *sqlx.DB {
	if s == nil {
		return nil
	}
	return s.db
}

// Builder returns a statement builder using the dialect's placeholder format.
func (s *Store) Builder() squirrel.StatementBuilderType {
	return s.builder
}

// Dialect reports the configured driver name.
func (s *Store) Dialect() string {
	return s.dialect
}

// Ping verifies the store is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.db == nil {
		return errors.New("store not configured")
	}
	return s.db.PingContext(ctx)
}

// Close releases pool resources.
func (s *Store) Close() {
	if s != nil && s.db != nil {
		_ = s.db.Close()
	}
}
