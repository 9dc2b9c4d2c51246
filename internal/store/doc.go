// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, allowing business rules to remain
// independent of specific database technologies or persistence details.
//
// Task and notification writes are deliberately independent: no store
// operation spans both tables, and concurrent task updates resolve as
// last write wins.
package store
