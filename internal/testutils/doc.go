// Package testutils provides testing utilities shared across packages:
// builders for domain entities, helpers that insert them through any store
// implementation, JWT helpers for authenticated requests, and a memory-backed
// slog handler for asserting on log output.
package testutils
