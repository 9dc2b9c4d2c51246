// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package, together with the
// embedded goose migrations that create the users, tasks and notifications
// tables. It handles query execution, error mapping, and data mapping between
// domain entities and database records.
package postgres
