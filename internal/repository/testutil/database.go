// Package testutil provides an isolated Postgres schema per integration test.
package testutil

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/themizzi/swaglabs-e2e/internal/config"
	"github.com/themizzi/swaglabs-e2e/internal/database"
)

// TestDatabase is a connection whose search_path points at a private schema
type TestDatabase struct {
	DB         *sql.DB
	SchemaName string
	admin      *sql.DB
}

// SetupTestDatabase creates a fresh schema holding the order store tables.
// The schema is dropped when the test ends.
func SetupTestDatabase(t *testing.T) *TestDatabase {
	t.Helper()

	cfg, err := config.LoadPostgresConfig(withDefaults(os.Getenv))
	if err != nil {
		t.Fatalf("Failed to load postgres config: %v", err)
	}

	admin, err := database.Open(cfg.ConnectionString())
	if err != nil {
		t.Skipf("Postgres unavailable: %v", err)
	}

	schema := "orders_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	if _, err := admin.Exec("CREATE SCHEMA " + schema); err != nil {
		admin.Close()
		t.Fatalf("Failed to create test schema: %v", err)
	}

	td := &TestDatabase{SchemaName: schema, admin: admin}
	t.Cleanup(func() { td.teardown(t) })

	td.DB, err = database.Open(fmt.Sprintf("%s search_path=%s", cfg.ConnectionString(), schema))
	if err != nil {
		t.Fatalf("Failed to connect to test schema: %v", err)
	}
	if _, err := td.DB.Exec(database.Schema); err != nil {
		t.Fatalf("Failed to create order tables: %v", err)
	}
	return td
}

func (td *TestDatabase) teardown(t *testing.T) {
	if td.DB != nil {
		td.DB.Close()
	}
	if _, err := td.admin.Exec("DROP SCHEMA IF EXISTS " + td.SchemaName + " CASCADE"); err != nil {
		t.Logf("Warning: failed to drop test schema %s: %v", td.SchemaName, err)
	}
	td.admin.Close()
}

// withDefaults points integration tests at a local postgres/postgres server
// unless the environment says otherwise.
func withDefaults(getenv func(string) string) func(string) string {
	defaults := map[string]string{
		"POSTGRES_USER":     "postgres",
		"POSTGRES_PASSWORD": "postgres",
		"POSTGRES_DB":       "postgres",
		"POSTGRES_HOSTNAME": "localhost",
	}
	return func(key string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return defaults[key]
	}
}
