// Package auth issues and validates bearer tokens and verifies passwords.
package auth
