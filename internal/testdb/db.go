package testdb

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/phrazzld/storefront-api/internal/ciutil"
	"github.com/phrazzld/storefront-api/internal/platform/postgres"
)

// Open connects to the test database and applies all migrations. The
// connection is closed when the test finishes.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	url := ciutil.GetTestDatabaseURL(nil)
	if url == "" {
		if ciutil.IsCI() {
			t.Fatalf("no test database configured: set %s or %s", ciutil.EnvTestDBURL, ciutil.EnvDatabaseURL)
		}
		t.Skipf("%s not set, skipping integration test", ciutil.EnvDatabaseURL)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := postgres.Open(ctx, url)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := postgres.Migrate(ctx, db, nil); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}
