// Package service contains the application use cases: registering and
// authenticating accounts, and managing products on behalf of their owners.
//
// Services depend on the store interfaces, never on a concrete database.
// Mutating operations follow a fixed order: load the target (reporting
// not-found first), check ownership through authz, then write.
//
// Errors are returned wrapped with %w so the API boundary can classify them
// with errors.Is / errors.As. Ownership denials are *apperr.Error values.
package service
