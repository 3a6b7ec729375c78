// Package service contains the application use cases for users and
// products. It orchestrates domain objects and the persistence contracts
// defined in internal/store.
//
// Services receive their dependencies through constructor injection and
// never depend on a concrete backend: the same UserService runs over the
// in-memory maps or PostgreSQL.
//
// Ownership rules live here. A user may only change or delete their own
// account, and only a product's owner may change, restock or delete it.
// Violations return ErrNotOwned.
package service
