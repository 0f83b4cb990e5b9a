// Package testutils provides testing utilities shared across packages,
// chiefly an in-memory slog.Handler for asserting on diagnostics.
package testutils
