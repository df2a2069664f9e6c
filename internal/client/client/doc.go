// Package client bootstraps the planner's local SQLite database.
//
// InitDatabase opens (or creates) the database file named by the DSN, pins
// the pool to a single connection so both storage tiers see one consistent
// SQLite handle, and applies the embedded goose migrations (see
// internal/client/migrations). RunMigrations is exported separately so tests
// can migrate a handle they opened themselves.
package client
