package ciutil

import (
	"log/slog"
	"os"

	"github.com/phrazzld/storefront-api/internal/redact"
)

// GetTestDatabaseURL returns the first non-empty of STOREFRONT_TEST_DB_URL
// and DATABASE_URL, or "" when neither is set. The chosen URL is logged
// with credentials redacted.
func GetTestDatabaseURL(logger *slog.Logger) string {
	if logger == nil {
		logger = slog.Default()
	}

	for _, name := range []string{EnvTestDBURL, EnvDatabaseURL} {
		if val := os.Getenv(name); val != "" {
			logger.Debug("using database URL from environment",
				slog.String("var", name),
				slog.String("value", redact.String(val)))
			return val
		}
	}

	logger.Debug("no database URL environment variables found")
	return ""
}
