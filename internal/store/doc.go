// Package store declares the persistence contracts for users and products,
// the errors every backend returns, and transaction helpers over database/sql.
// The memory and postgres backends both satisfy these interfaces.
package store
