// Package sqlite provides SQLite implementations of the store interfaces,
// built on sqlx and the pure Go modernc.org/sqlite driver. It backs local
// development (database.driver=sqlite) and the store tests, which run against
// an in-memory database with the same embedded schema the server migrates.
package sqlite
