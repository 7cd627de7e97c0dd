// Package iotesting provides shared helpers for integration tests.
package iotesting

import (
	"os"
	"strconv"

	"github.com/worldable/worlddb/pkg/config"
)

// TestDatabaseName is the database used by all integration tests, so
// they never run against a production database.
const TestDatabaseName = "worlddb_test"

// GetTestConfig returns a configuration suitable for integration tests:
// defaults, overridden from WORLDDB_TEST_* env vars when present, with
// the database name forced to TestDatabaseName.
func GetTestConfig() *config.Config {
	cfg := config.New()

	if host := os.Getenv("WORLDDB_TEST_HOST"); host != "" {
		cfg.Database.Host = host
	}
	if port := os.Getenv("WORLDDB_TEST_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Database.Port = p
		}
	}
	if user := os.Getenv("WORLDDB_TEST_USER"); user != "" {
		cfg.Database.User = user
	}
	if pass := os.Getenv("WORLDDB_TEST_PASSWORD"); pass != "" {
		cfg.Database.Password = pass
	}

	cfg.Database.Database = TestDatabaseName

	return cfg
}

// GetTestDatabaseConfig returns only the database part of the test
// configuration.
func GetTestDatabaseConfig() *config.DatabaseConfig {
	cfg := GetTestConfig()
	return &cfg.Database
}
