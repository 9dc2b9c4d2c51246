// Package testdb provides database fixtures for store tests: a migrated
// PostgreSQL connection gated on DATABASE_URL with per-test transactions, and
// a migrated in-memory SQLite database that needs no external services.
package testdb
