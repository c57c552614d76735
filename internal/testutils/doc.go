// Package testutils holds helpers shared by tests across packages: an
// in-memory slog handler, envelope decoding and bearer-token helpers.
package testutils
