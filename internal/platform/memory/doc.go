// Package memory provides map-backed implementations of the store interfaces.
// Entities are keyed by ID and guarded by a read/write mutex; every read
// returns a copy so callers never share state with the store.
package memory
