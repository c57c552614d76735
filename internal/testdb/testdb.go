package testdb

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stockroom-dev/stockroom-api/internal/config"
	"github.com/stockroom-dev/stockroom-api/internal/platform/postgres"
	"github.com/stockroom-dev/stockroom-api/internal/redact"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// EnvDatabaseURL names the variable holding the test database DSN.
const EnvDatabaseURL = "STOCKROOM_TEST_DATABASE_URL"

// Connection timeouts. CI databases are started alongside the job and can
// take a while to accept connections.
const (
	localTimeout = 5 * time.Second
	ciTimeout    = 30 * time.Second
)

var (
	migrateOnce sync.Once
	migrateErr  error
)

// DatabaseURL returns the configured test DSN, or "" when integration tests
// are disabled.
func DatabaseURL() string {
	return os.Getenv(EnvDatabaseURL)
}

// Open connects to the test database and applies migrations once per test
// binary. It skips t when EnvDatabaseURL is unset.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := DatabaseURL()
	if dsn == "" {
		t.Skipf("%s not set; skipping database integration test", EnvDatabaseURL)
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout())
	defer cancel()

	db, err := postgres.Open(ctx, config.DatabaseConfig{URL: dsn, MaxOpenConns: 4}, nil)
	require.NoError(t, err, "open test database %s", redact.String(dsn))
	t.Cleanup(func() {
		if err := postgres.Close(db); err != nil {
			t.Logf("close test database: %v", err)
		}
	})

	migrateOnce.Do(func() {
		migrateErr = postgres.Migrate(context.Background(), db, postgres.MigrateUp, nil)
	})
	require.NoError(t, migrateErr, "migrate test database")

	return db
}

// WithTx begins a transaction on db that is rolled back when t finishes.
func WithTx(t *testing.T, db *gorm.DB) *gorm.DB {
	t.Helper()

	tx := db.Begin()
	require.NoError(t, tx.Error, "begin test transaction")
	t.Cleanup(func() {
		if err := tx.Rollback().Error; err != nil && !errors.Is(err, gorm.ErrInvalidTransaction) {
			t.Logf("rollback test transaction: %v", err)
		}
	})
	return tx
}

// OpenTx is Open followed by WithTx.
func OpenTx(t *testing.T) *gorm.DB {
	t.Helper()
	return WithTx(t, Open(t))
}

func connectTimeout() time.Duration {
	if isCIEnvironment() {
		return ciTimeout
	}
	return localTimeout
}

// isCIEnvironment reports whether a common CI marker variable is set.
func isCIEnvironment() bool {
	for _, name := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}
