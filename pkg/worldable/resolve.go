package worldable

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/worldable/worlddb/pkg/schema"
)

// resolve maps a loosely-typed reference to a concrete entity id.
// Numeric input is a primary key; strings are tried against the kind's
// natural keys in their fixed order; schema model instances supply
// their own id.
func (m *Manager) resolve(
	ctx context.Context,
	kind Kind,
	ref any,
) (int64, error) {
	if id, ok := entityID(ref); ok {
		if id <= 0 {
			return 0, resolveError(kind, ref)
		}
		return id, nil
	}

	switch v := ref.(type) {
	case int:
		return m.byID(ctx, kind, int64(v))
	case int32:
		return m.byID(ctx, kind, int64(v))
	case int64:
		return m.byID(ctx, kind, v)
	case uint:
		return m.byID(ctx, kind, int64(v))
	case uint64:
		return m.byID(ctx, kind, int64(v))
	case float64:
		return m.byID(ctx, kind, int64(v))
	case string:
		if id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			return m.byID(ctx, kind, id)
		}
		return m.byNaturalKey(ctx, kind, v)
	default:
		return 0, resolveError(kind, ref)
	}
}

// byID verifies a primary key exists.
func (m *Manager) byID(
	ctx context.Context,
	kind Kind,
	id int64,
) (int64, error) {
	var found int64
	err := m.db.WithContext(ctx).
		Table(kind.Table).
		Select("id").
		Where("id = ?", id).
		Limit(1).
		Scan(&found).Error
	if err != nil {
		return 0, queryError(kind.Tag, err)
	}
	if found == 0 {
		return 0, resolveError(kind, id)
	}
	return found, nil
}

// byNaturalKey tries the kind's lookups in order and returns the first
// match.
func (m *Manager) byNaturalKey(
	ctx context.Context,
	kind Kind,
	input string,
) (int64, error) {
	for _, key := range kind.keys {
		value := key.norm(input)
		if value == "" {
			continue
		}

		q := m.db.WithContext(ctx).
			Table(kind.Table).
			Select("id").
			Order("id").
			Limit(1)
		if key.partial {
			pattern := "%" + strings.ToLower(value) + "%"
			q = q.Where(
				fmt.Sprintf("LOWER(%s) LIKE ?", key.column), pattern)
		} else {
			q = q.Where(fmt.Sprintf("%s = ?", key.column), value)
		}

		var id int64
		if err := q.Scan(&id).Error; err != nil {
			return 0, queryError(kind.Tag, err)
		}
		if id > 0 {
			return id, nil
		}
	}

	return 0, resolveError(kind, input)
}

// entityID extracts the primary key from a schema model instance.
func entityID(ref any) (int64, bool) {
	switch v := ref.(type) {
	case schema.Continent:
		return v.ID, true
	case *schema.Continent:
		return v.ID, true
	case schema.Subregion:
		return v.ID, true
	case *schema.Subregion:
		return v.ID, true
	case schema.Country:
		return v.ID, true
	case *schema.Country:
		return v.ID, true
	case schema.State:
		return v.ID, true
	case *schema.State:
		return v.ID, true
	case schema.City:
		return v.ID, true
	case *schema.City:
		return v.ID, true
	case schema.Language:
		return v.ID, true
	case *schema.Language:
		return v.ID, true
	case schema.Currency:
		return v.ID, true
	case *schema.Currency:
		return v.ID, true
	case schema.Timezone:
		return v.ID, true
	case *schema.Timezone:
		return v.ID, true
	}
	return 0, false
}
