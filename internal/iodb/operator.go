// Package iodb implements database operations using pgxpool.
// This is an impure I/O package that implements contracts
// defined in pkg/.
package iodb

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/worldable/worlddb/pkg/config"
	"github.com/worldable/worlddb/pkg/db"
)

// pgxOperator implements db.Operator using pgxpool for
// connection pooling.
type pgxOperator struct {
	pool *pgxpool.Pool
}

// NewPgxOperator creates a new database operator
// (without connecting).
func NewPgxOperator() db.Operator {
	return &pgxOperator{}
}

// Connect establishes a connection pool to PostgreSQL.
func (p *pgxOperator) Connect(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
		cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return connectionError(cfg, err)
	}

	// Seeding is effectively single-writer, a small pool is enough.
	poolConfig.MaxConns = 10
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = 0
	poolConfig.MaxConnIdleTime = 0

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return connectionError(cfg, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return connectionError(cfg, err)
	}

	p.pool = pool
	return nil
}

// Close releases all database connections.
func (p *pgxOperator) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}

// Pool returns the underlying pgxpool.Pool for advanced
// operations.
func (p *pgxOperator) Pool() *pgxpool.Pool {
	return p.pool
}

// TableExists checks if a table exists in the public schema.
func (p *pgxOperator) TableExists(
	ctx context.Context,
	tableName string,
) (bool, error) {
	if p.pool == nil {
		return false, notConnectedError()
	}

	query := `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = 'public'
			AND table_name = $1
		)
	`

	var exists bool
	err := p.pool.QueryRow(ctx, query, tableName).Scan(&exists)
	if err != nil {
		return false, tableCheckError(tableName, err)
	}

	return exists, nil
}

// RowCount returns the number of rows in a table.
func (p *pgxOperator) RowCount(
	ctx context.Context,
	tableName string,
) (int64, error) {
	if p.pool == nil {
		return 0, notConnectedError()
	}

	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", tableName)

	var count int64
	err := p.pool.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		return 0, queryError(tableName, err)
	}

	return count, nil
}

// DropTable drops a single table with CASCADE.
func (p *pgxOperator) DropTable(
	ctx context.Context,
	tableName string,
) error {
	if p.pool == nil {
		return notConnectedError()
	}

	dropSQL := fmt.Sprintf(
		"DROP TABLE IF EXISTS %s CASCADE", tableName)
	if _, err := p.pool.Exec(ctx, dropSQL); err != nil {
		return dropTableError(tableName, err)
	}

	return nil
}
