package worldable

import (
	"context"

	"gorm.io/gorm"

	"github.com/worldable/worlddb/pkg/schema"
)

// Owner identifies the host-application record holding the attachment.
type Owner struct {
	// Type is the host's own discriminator, e.g. "App\\Models\\User"
	// or "users".
	Type string
	ID   int64
}

// Option scopes or enriches a single operation.
type Option func(*opts)

type opts struct {
	group *string
	meta  map[string]any
}

// InGroup scopes the operation to a named attachment group.
func InGroup(group string) Option {
	return func(o *opts) { o.group = &group }
}

// WithMeta stores an arbitrary payload on the created links.
func WithMeta(meta map[string]any) Option {
	return func(o *opts) { o.meta = meta }
}

func applyOptions(options []Option) opts {
	var o opts
	for _, opt := range options {
		opt(&o)
	}
	return o
}

// Manager performs attachment operations against the worldables table.
type Manager struct {
	db *gorm.DB
}

// New creates a Manager on an open gorm connection.
func New(db *gorm.DB) *Manager {
	return &Manager{db: db}
}

// ensure fails fast when the junction table has not been provisioned.
func (m *Manager) ensure() error {
	if !m.db.Migrator().HasTable(&schema.Worldable{}) {
		return tableMissingError()
	}
	return nil
}

// Attach links owner to the entity ref resolves to. Attaching an
// already-linked entity in the same group is a no-op.
func (m *Manager) Attach(
	ctx context.Context,
	owner Owner,
	kind Kind,
	ref any,
	options ...Option,
) error {
	if err := m.ensure(); err != nil {
		return err
	}
	o := applyOptions(options)

	id, err := m.resolve(ctx, kind, ref)
	if err != nil {
		return err
	}

	var count int64
	q := m.scope(ctx, owner, kind, o.group).
		Where("world_entity_id = ?", id)
	if err := q.Count(&count).Error; err != nil {
		return queryError(kind.Tag, err)
	}
	if count > 0 {
		return nil
	}

	row := schema.Worldable{
		WorldableType:   owner.Type,
		WorldableID:     owner.ID,
		WorldEntityID:   id,
		WorldEntityType: kind.Tag,
		Group:           o.group,
		Meta:            o.meta,
	}
	if err := m.db.WithContext(ctx).Create(&row).Error; err != nil {
		return queryError(kind.Tag, err)
	}
	return nil
}

// Detach removes the link between owner and the entity ref resolves to.
// With InGroup only that group's link is removed.
func (m *Manager) Detach(
	ctx context.Context,
	owner Owner,
	kind Kind,
	ref any,
	options ...Option,
) error {
	if err := m.ensure(); err != nil {
		return err
	}
	o := applyOptions(options)

	id, err := m.resolve(ctx, kind, ref)
	if err != nil {
		return err
	}

	err = m.scope(ctx, owner, kind, o.group).
		Where("world_entity_id = ?", id).
		Delete(&schema.Worldable{}).Error
	if err != nil {
		return queryError(kind.Tag, err)
	}
	return nil
}

// Sync replaces owner's attachment set for kind with refs. Without
// InGroup the whole set is replaced; with InGroup only that group's
// links are replaced and other groups stay untouched.
func (m *Manager) Sync(
	ctx context.Context,
	owner Owner,
	kind Kind,
	refs []any,
	options ...Option,
) error {
	if err := m.ensure(); err != nil {
		return err
	}
	o := applyOptions(options)

	ids := make([]int64, 0, len(refs))
	for _, ref := range refs {
		id, err := m.resolve(ctx, kind, ref)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}

	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := scopeOn(tx, owner, kind, o.group).
			Delete(&schema.Worldable{}).Error
		if err != nil {
			return err
		}

		for _, id := range ids {
			row := schema.Worldable{
				WorldableType:   owner.Type,
				WorldableID:     owner.ID,
				WorldEntityID:   id,
				WorldEntityType: kind.Tag,
				Group:           o.group,
				Meta:            o.meta,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return queryError(kind.Tag, err)
	}
	return nil
}

// DetachAll removes every link between owner and entities of kind,
// optionally scoped to a group.
func (m *Manager) DetachAll(
	ctx context.Context,
	owner Owner,
	kind Kind,
	options ...Option,
) error {
	if err := m.ensure(); err != nil {
		return err
	}
	o := applyOptions(options)

	err := m.scope(ctx, owner, kind, o.group).
		Delete(&schema.Worldable{}).Error
	if err != nil {
		return queryError(kind.Tag, err)
	}
	return nil
}

// Has reports whether owner is linked to the entity ref resolves to.
func (m *Manager) Has(
	ctx context.Context,
	owner Owner,
	kind Kind,
	ref any,
	options ...Option,
) (bool, error) {
	if err := m.ensure(); err != nil {
		return false, err
	}
	o := applyOptions(options)

	id, err := m.resolve(ctx, kind, ref)
	if err != nil {
		return false, err
	}

	var count int64
	err = m.scope(ctx, owner, kind, o.group).
		Where("world_entity_id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, queryError(kind.Tag, err)
	}
	return count > 0, nil
}

// scope builds the (owner, kind[, group]) query base.
func (m *Manager) scope(
	ctx context.Context,
	owner Owner,
	kind Kind,
	group *string,
) *gorm.DB {
	return scopeOn(m.db.WithContext(ctx), owner, kind, group)
}

func scopeOn(
	db *gorm.DB,
	owner Owner,
	kind Kind,
	group *string,
) *gorm.DB {
	q := db.Model(&schema.Worldable{}).
		Where("worldable_type = ?", owner.Type).
		Where("worldable_id = ?", owner.ID).
		Where("world_entity_type = ?", kind.Tag)
	if group != nil {
		q = q.Where("group_label = ?", *group)
	}
	return q
}
