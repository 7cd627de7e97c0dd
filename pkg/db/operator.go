// Package db defines the contract for low-level database management.
package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/worldable/worlddb/pkg/config"
)

// Operator defines basic database management operations. It handles
// connection lifecycle and exposes the pgxpool.Pool for the lifecycle
// components (schema manager, seeders, linkers, health checker) to run
// their specialized SQL internally.
//
// The interface stays minimal on purpose: schema creation and repair go
// through GORM AutoMigrate in the schema manager, and bulk seeding uses
// the pool directly for batched upserts.
type Operator interface {
	// Connect establishes a connection pool to the database.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the database connection pool.
	Close() error

	// Pool returns the underlying pgxpool.Pool for components that run
	// transactions, batched inserts, and custom queries.
	Pool() *pgxpool.Pool

	// TableExists checks if a table exists in the public schema.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// RowCount returns the number of rows in a table.
	RowCount(ctx context.Context, tableName string) (int64, error)

	// DropTable drops a single table with CASCADE if it exists.
	DropTable(ctx context.Context, tableName string) error
}
