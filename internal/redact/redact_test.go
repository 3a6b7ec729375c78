package redact_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/phrazzld/storefront-api/internal/redact"
	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "no sensitive data",
			input:    "product stock adjusted",
			expected: "product stock adjusted",
		},
		{
			name:     "connection string",
			input:    "failed to ping postgres://app:hunter22@db:5432/storefront",
			expected: "failed to ping [REDACTED_CREDENTIAL]db:5432/storefront",
		},
		{
			name:     "bcrypt hash",
			input:    "hash $2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy rejected",
			expected: "hash [REDACTED_HASH] rejected",
		},
		{
			name:     "password parameter",
			input:    "login failed with password=secret123",
			expected: "login failed with [REDACTED_CREDENTIAL]",
		},
		{
			name:     "jwt secret",
			input:    "config jwt_secret=averyveryverylongsecretvalue",
			expected: "config [REDACTED_KEY]",
		},
		{
			name: "jwt",
			input: "bad token eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9." +
				"eyJzdWIiOiIxMjM0NTY3ODkwIn0.SflKxwRJSMeKKF2QT4fwpMeJf36POk6yJV_adQssw5c",
			expected: "bad token [REDACTED_JWT]",
		},
		{
			name:     "email",
			input:    "duplicate email alice@example.com",
			expected: "duplicate email [REDACTED_EMAIL]",
		},
		{
			name:     "sql",
			input:    "query failed: SELECT id, name FROM users WHERE email = $1",
			expected: "query failed: [REDACTED_SQL]",
		},
		{
			name:     "file path",
			input:    "open /etc/storefront/config.yaml: permission denied",
			expected: "open [REDACTED_PATH]: permission denied",
		},
		{
			name:     "host and port",
			input:    "dial tcp db.internal.example:5432: connection refused",
			expected: "dial tcp [REDACTED_HOST]: connection refused",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, redact.String(tc.input))
		})
	}
}

func TestError(t *testing.T) {
	assert.Equal(t, "", redact.Error(nil))

	wrapped := fmt.Errorf("failed to create user: %w", errors.New("duplicate key for bob@example.com"))
	assert.Equal(t, "failed to create user: duplicate key for [REDACTED_EMAIL]", redact.Error(wrapped))
}
