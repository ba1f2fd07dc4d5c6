package testutil

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/crane-workorders/internal/config"
	"github.com/spec-kit/crane-workorders/internal/persistence"
)

// OpenStore opens a private in-memory SQLite store with the schema applied.
// The store is closed when the test finishes.
func OpenStore(t *testing.T) *persistence.Store {
	t.Helper()
	// Shared cache keeps the database alive across pooled connections; the
	// random name keeps tests from seeing each other's rows.
	name := strings.ReplaceAll(uuid.NewString(), "-", "")
	store, err := persistence.Open(context.Background(), config.DatabaseConfig{
		Driver:       config.DriverSQLite,
		DSN:          "file:" + name + "?mode=memory&cache=shared",
		MaxOpenConns: 1,
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(store.Close)

	if err := store.EnsureSchema(context.Background(), zap.NewNop()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return store
}
