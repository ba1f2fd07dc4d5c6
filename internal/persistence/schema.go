package persistence

import (
	"context"
	"embed"
	"fmt"

	"go.uber.org/zap"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// EnsureSchema creates every table the service needs. It is idempotent and runs
// in a single transaction, so a failure leaves the store untouched.
func (s *Store) EnsureSchema(ctx context.Context, logger *zap.Logger) error {
	file := "schema/" + s.dialect + ".sql"
	script, err := schemaFS.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read schema %s: %w", file, err)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, string(script)); err != nil {
		return fmt.Errorf("apply schema %s: %w", file, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}

	logger.Info("schema ensured", zap.String("dialect", s.dialect))
	return nil
}
