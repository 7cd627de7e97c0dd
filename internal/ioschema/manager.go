// Package ioschema implements the world.SchemaManager interface for
// database schema management. This is an impure I/O package that wraps
// GORM AutoMigrate functionality.
package ioschema

import (
	"context"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/worldable/worlddb/pkg/component"
	"github.com/worldable/worlddb/pkg/db"
	"github.com/worldable/worlddb/pkg/schema"
	"github.com/worldable/worlddb/pkg/world"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// manager implements the world.SchemaManager interface using GORM
// AutoMigrate.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) world.SchemaManager {
	return &manager{operator: op}
}

// Provision creates or updates the tables for the given components
// with GORM AutoMigrate, plus the installation-state ledger.
// AutoMigrate is idempotent and never drops columns or rows.
func (m *manager) Provision(
	ctx context.Context,
	comps []component.Component,
) error {
	pool := m.operator.Pool()
	if pool == nil {
		return NotConnectedError()
	}

	sqlDB := stdlib.OpenDBFromPool(pool)

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{},
	)
	if err != nil {
		return GORMConnectionError(err)
	}

	models := make([]any, 0, len(comps)+1)
	for _, c := range comps {
		if mod := schema.Model(c); mod != nil {
			models = append(models, mod)
		}
	}
	models = append(models, &schema.InstallationState{})

	if err := gormDB.WithContext(ctx).AutoMigrate(models...); err != nil {
		return CreateSchemaError(err)
	}

	return nil
}

// Missing returns the subset of components whose tables do not exist.
func (m *manager) Missing(
	ctx context.Context,
	comps []component.Component,
) ([]component.Component, error) {
	var missing []component.Component
	for _, c := range comps {
		exists, err := m.operator.TableExists(ctx, component.Table(c))
		if err != nil {
			return nil, err
		}
		if !exists {
			missing = append(missing, c)
		}
	}
	return missing, nil
}
