// Package testdb opens the integration test database. Tests that use it are
// skipped unless STOCKROOM_TEST_DATABASE_URL is set, and each test runs inside
// a transaction that is rolled back on cleanup so tests never see each
// other's rows.
package testdb
