// Package testdb opens a migrated PostgreSQL database for integration tests
// and isolates each test in a rolled-back transaction.
//
// Tests are skipped when no database URL is configured, except under CI
// where a missing database is a failure.
package testdb
